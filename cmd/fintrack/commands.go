package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// credentials registers the login flags every session-scoped command shares.
type credentials struct {
	username *string
	password *string
}

func newFlagSet(name string, out io.Writer) (*flag.FlagSet, credentials) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs, credentials{
		username: fs.String("username", "", "Account username (case-sensitive)"),
		password: fs.String("password", "", "Account password"),
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usagef("usage shown above")
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usagef("%s: unexpected arguments %v", fs.Name(), fs.Args())
	}
	return nil
}

func (c credentials) login(ctx context.Context, app *cli.App) (*services.Session, error) {
	if *c.username == "" || *c.password == "" {
		return nil, usagef("--username and --password are required")
	}
	return app.Accounts.Login(ctx, *c.username, *c.password)
}

func handleRegister(ctx context.Context, app *cli.App, args []string, out io.Writer) error {
	fs, creds := newFlagSet("register", out)
	email := fs.String("email", "", "Email address")
	income := fs.String("income", "", "Monthly income")
	if err := parse(fs, args); err != nil {
		return err
	}

	amount, err := core.ParseAmount(*income)
	if err != nil {
		return core.ErrInvalidIncome
	}
	u, err := app.Accounts.Register(ctx, services.RegisterRequest{
		Username:      *creds.username,
		Password:      *creds.password,
		Email:         *email,
		MonthlyIncome: amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Registration successful! Welcome, %s. You can now log in.\n", u.Username)
	return nil
}

func handleAdd(ctx context.Context, app *cli.App, args []string, out io.Writer) error {
	fs, creds := newFlagSet("add", out)
	date := fs.String("date", time.Now().Format(core.DateLayout), "Transaction date (YYYY-MM-DD)")
	category := fs.String("category", "", "Category, e.g. Food or Salary")
	amountStr := fs.String("amount", "", "Amount, e.g. 250.50")
	typ := fs.String("type", string(core.Expense), "income or expense")
	description := fs.String("description", "", "Optional description")
	if err := parse(fs, args); err != nil {
		return err
	}

	sess, err := creds.login(ctx, app)
	if err != nil {
		return err
	}

	d, err := core.ParseDate(*date)
	if err != nil {
		return err
	}
	amount, err := core.ParseAmount(*amountStr)
	if err != nil {
		return err
	}
	t, err := core.ParseTransactionType(*typ)
	if err != nil {
		return err
	}
	desc := strings.TrimSpace(*description)
	if desc == "" {
		desc = core.NoDescription
	}

	tx, err := app.Ledger.AddTransaction(ctx, sess, services.NewTransaction{
		Date:        d,
		Category:    *category,
		Amount:      amount,
		Type:        t,
		Description: desc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Transaction added successfully! #%d %s %s %s %s\n",
		tx.ID, tx.Date, tx.Type, tx.Category, core.FormatAmount(tx.Amount))
	return nil
}

func handleDashboard(ctx context.Context, app *cli.App, args []string, out io.Writer) error {
	fs, creds := newFlagSet("dashboard", out)
	if err := parse(fs, args); err != nil {
		return err
	}
	sess, err := creds.login(ctx, app)
	if err != nil {
		return err
	}

	ov, err := app.Ledger.Overview(ctx, sess)
	if err != nil {
		return err
	}
	return renderDashboard(out, sess, ov)
}

func handleForecast(ctx context.Context, app *cli.App, args []string, out io.Writer) error {
	fs, creds := newFlagSet("forecast", out)
	periods := fs.Int("periods", app.Config.ForecastPeriods, "Number of months to project")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *periods < 1 {
		return usagef("--periods must be at least 1")
	}
	sess, err := creds.login(ctx, app)
	if err != nil {
		return err
	}

	projections, err := app.Ledger.Forecast(ctx, sess, *periods)
	if err != nil {
		return err
	}
	return renderForecast(out, projections)
}

func handleReport(ctx context.Context, app *cli.App, args []string, out io.Writer) error {
	now := time.Now()
	fs, creds := newFlagSet("report", out)
	monthStr := fs.String("month", now.Month().String(), "Month name or number")
	year := fs.Int("year", now.Year(), "Year")
	path := fs.String("out", "", "Write the report to this file instead of stdout")
	if err := parse(fs, args); err != nil {
		return err
	}

	month, err := report.ParseMonth(*monthStr)
	if err != nil {
		return err
	}
	sess, err := creds.login(ctx, app)
	if err != nil {
		return err
	}

	r, err := app.Ledger.Report(ctx, sess, *year, month)
	if err != nil {
		return err
	}

	if *path == "" {
		return report.RenderText(out, r)
	}
	f, err := os.Create(*path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.RenderText(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(out, "%s saved to %s (%d transactions)\n", r.Title(), *path, len(r.Items))
	return nil
}
