package storage

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/ledger/ledgertest"
	"fintrack/internal/log"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryConformance(t *testing.T) {
	ledgertest.Run(t, func(t *testing.T) ledger.Store { return newTestRepository(t) })
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fintrack.db")
	repo, err := NewSQLiteRepository(context.Background(), path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	ctx := context.Background()
	u, err := repo.CreateUser(ctx, ledgertest.NewUser("mia"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, ledgertest.NewTransaction(u.ID, "2025-05-05", core.Income, "Salary", "1234.56")); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLiteRepository(context.Background(), path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer reopened.Close()

	txs, err := reopened.ListTransactionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if !txs[0].Amount.Equal(decimal.RequireFromString("1234.56")) || txs[0].Date.String() != "2025-05-05" {
		t.Fatalf("unexpected transaction: %+v", txs[0])
	}
}

func TestRepositoryLogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Component: log.ComponentApp, Output: &buf})
	ctx := log.NewContext(context.Background(), logger)
	path := filepath.Join(t.TempDir(), "fintrack.db")

	repo, err := NewSQLiteRepository(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := repo.CreateUser(ctx, ledgertest.NewUser("noor")); err != nil {
		t.Fatalf("create user: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLiteRepository(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reopened.Close()

	out := buf.String()
	for _, want := range []string{
		"Ledger schema migrated", "from_version=0", "to_version=1",
		"User saved to SQLite", "operation=create", "username=noor",
		"Ledger schema up to date", "operation=migrate", "version=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.Contains(line, "component=storage") {
			t.Errorf("record not tagged as storage: %s", line)
		}
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	if isUniqueConstraintError(nil) {
		t.Fatal("nil is not a constraint error")
	}
	if !isUniqueConstraintError(errWithMessage("constraint failed: UNIQUE constraint failed: users.username (2067)")) {
		t.Fatal("expected sqlite unique error to match")
	}
}

type errWithMessage string

func (e errWithMessage) Error() string { return string(e) }
