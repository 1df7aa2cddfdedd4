package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/services"
)

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("FINTRACK_TEST_VALUE", "")
	os.Unsetenv("FINTRACK_TEST_VALUE")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FINTRACK_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("FINTRACK_TEST_VALUE"); got != "from-file" {
		t.Fatalf("FINTRACK_TEST_VALUE = %q, want from-file", got)
	}
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("shouty", &buf)
	if logger == nil {
		t.Fatal("expected logger")
	}
	if !strings.Contains(buf.String(), "Unknown log level") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestLoadAndValidateConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sheets")
	var buf bytes.Buffer
	if _, err := LoadAndValidateConfig(SetupLogger("info", &buf)); err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"configuration_error", "component=config", "operation=validate"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in configuration error log, got %q", want, buf.String())
		}
	}
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_BACKEND", "blob")
	t.Setenv("LEDGER_DIR", filepath.Join(dir, "ledger"))
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FORECAST_PERIODS", "")
	t.Setenv("RECENT_LIMIT", "")

	var logs bytes.Buffer
	app, err := Bootstrap(context.Background(), &logs)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	defer app.Close()

	if app.Config.ForecastPeriods != 3 {
		t.Errorf("ForecastPeriods = %d, want 3", app.Config.ForecastPeriods)
	}

	ctx := app.Context(context.Background())
	if _, err := app.Accounts.Register(ctx, services.RegisterRequest{
		Username: "lee", Password: "abcdef", Email: "lee@x", MonthlyIncome: decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ledger", "users.json")); err != nil {
		t.Fatalf("users collection missing: %v", err)
	}
	for _, want := range []string{
		"Initialized blob backend",
		"operation=startup",
		"User saved to ledger blob",
		"component=storage",
	} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("expected %q in logs, got %q", want, logs.String())
		}
	}
}
