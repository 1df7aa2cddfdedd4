// Command fintrack is the personal finance tracker command-line interface.
//
// Commands:
//
//	register     Create an account
//	add          Record an income or expense transaction
//	dashboard    Show totals, category breakdown, recent activity and forecast
//	forecast     Project savings for the coming months
//	report       Print or save a monthly report
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/core"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 0
	}

	cmd, rest := args[0], args[1:]
	var handler func(ctx context.Context, app *cli.App, args []string, out io.Writer) error

	switch cmd {
	case "register":
		handler = handleRegister
	case "add":
		handler = handleAdd
	case "dashboard":
		handler = handleDashboard
	case "forecast":
		handler = handleForecast
	case "report":
		handler = handleReport
	case "version":
		fmt.Fprintf(stdout, "fintrack v%s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
		printUsage(stderr)
		return 1
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	app, err := cli.Bootstrap(ctx, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	if err := handler(app.Context(ctx), app, rest, stdout); err != nil {
		return reportError(stderr, err)
	}
	return 0
}

// reportError prints err for the user. Usage errors exit 2, everything else 1.
func reportError(w io.Writer, err error) int {
	var uerr usageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	case errors.Is(err, core.ErrPersistence):
		fmt.Fprintf(w, "Storage failure: %v\n", err)
		return 1
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "fintrack v"+version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fintrack <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  register     Create an account")
	fmt.Fprintln(w, "  add          Record an income or expense")
	fmt.Fprintln(w, "  dashboard    Show summary, categories, recent transactions and forecast")
	fmt.Fprintln(w, "  forecast     Project savings for the coming months")
	fmt.Fprintln(w, "  report       Print or save a monthly report")
	fmt.Fprintln(w, "  version      Print version")
	fmt.Fprintln(w, "  help         Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  fintrack register --username asha --password secret1 --email asha@example.com --income 50000")
	fmt.Fprintln(w, "  fintrack add --username asha --password secret1 --type expense --category Food --amount 250.50")
	fmt.Fprintln(w, "  fintrack report --username asha --password secret1 --month March --year 2025 --out march.txt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  DATA_BACKEND       memory, blob or sqlite (default blob)")
	fmt.Fprintln(w, "  LEDGER_DIR         directory for the blob backend (default ./data)")
	fmt.Fprintln(w, "  SQLITE_DB_PATH     database file for the sqlite backend (default ./data/fintrack.db)")
	fmt.Fprintln(w, "  LOG_LEVEL          debug, info, warn or error (default info)")
	fmt.Fprintln(w, "  FORECAST_PERIODS   months projected by dashboard and forecast (default 3)")
	fmt.Fprintln(w, "  RECENT_LIMIT       transactions listed on the dashboard (default 10)")
}
