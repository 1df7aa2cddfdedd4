// Package ledgertest holds the behaviour every ledger.Store implementation must share.
package ledgertest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Factory returns an empty store. Cleanup should be registered with t.Cleanup.
type Factory func(t *testing.T) ledger.Store

// NewUser returns a valid user candidate.
func NewUser(username string) core.User {
	return core.User{
		Username:      username,
		Password:      "password1",
		Email:         username + "@example.com",
		MonthlyIncome: decimal.NewFromInt(40000),
	}
}

// NewTransaction returns a valid transaction candidate.
func NewTransaction(userID int64, date string, typ core.TransactionType, category, amount string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		UserID:      userID,
		Date:        d,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Description: core.NoDescription,
	}
}

// Run executes the conformance suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateUserAssignsUniqueIDs", func(t *testing.T) { testCreateUserAssignsUniqueIDs(t, newStore(t)) })
	t.Run("FindUserByUsername", func(t *testing.T) { testFindUserByUsername(t, newStore(t)) })
	t.Run("DuplicateUsername", func(t *testing.T) { testDuplicateUsername(t, newStore(t)) })
	t.Run("InvalidUser", func(t *testing.T) { testInvalidUser(t, newStore(t)) })
	t.Run("TransactionsForUser", func(t *testing.T) { testTransactionsForUser(t, newStore(t)) })
	t.Run("InvalidTransaction", func(t *testing.T) { testInvalidTransaction(t, newStore(t)) })
}

func testCreateUserAssignsUniqueIDs(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a, err := s.CreateUser(ctx, NewUser("alice"))
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	b, err := s.CreateUser(ctx, NewUser("bob"))
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", a.ID, b.ID)
	}
	if !a.MonthlyIncome.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("income not preserved: %s", a.MonthlyIncome)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func testFindUserByUsername(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	created, err := s.CreateUser(ctx, NewUser("Carol"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.FindUserByUsername(ctx, "Carol")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != created.ID || got.Password != "password1" || got.Email != "Carol@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.FindUserByUsername(ctx, "carol"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("lookup must be case-sensitive, got %v", err)
	}
}

func testDuplicateUsername(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	if _, err := s.CreateUser(ctx, NewUser("dave")); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := NewUser("dave")
	dup.Email = "other@example.com"
	if _, err := s.CreateUser(ctx, dup); !errors.Is(err, core.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Email != "dave@example.com" {
		t.Fatalf("store modified by rejected create: %+v", users)
	}

	// Case differs, so this is a distinct username.
	if _, err := s.CreateUser(ctx, NewUser("Dave")); err != nil {
		t.Fatalf("create Dave: %v", err)
	}
}

func testInvalidUser(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	bad := NewUser("erin")
	bad.MonthlyIncome = decimal.Zero
	if _, err := s.CreateUser(ctx, bad); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("invalid user stored: %+v", users)
	}
}

func testTransactionsForUser(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	u1, err := s.CreateUser(ctx, NewUser("frank"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u2, err := s.CreateUser(ctx, NewUser("grace"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	inputs := []core.Transaction{
		NewTransaction(u1.ID, "2025-02-10", core.Expense, "Food", "120.50"),
		NewTransaction(u2.ID, "2025-02-11", core.Income, "Salary", "1000"),
		NewTransaction(u1.ID, "2025-01-05", core.Income, "Salary", "40000"),
		NewTransaction(u1.ID, "2025-03-01", core.Expense, "Transport", "75"),
	}
	inputs[0].Description = "weekly groceries"

	ids := map[int64]bool{}
	for _, in := range inputs {
		got, err := s.CreateTransaction(ctx, in)
		if err != nil {
			t.Fatalf("create transaction: %v", err)
		}
		if got.ID == 0 || ids[got.ID] {
			t.Fatalf("expected fresh id, got %d", got.ID)
		}
		ids[got.ID] = true
	}

	list, err := s.ListTransactionsForUser(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(list))
	}
	// Storage order, not date order.
	wantDates := []string{"2025-02-10", "2025-01-05", "2025-03-01"}
	for i, tx := range list {
		if tx.Date.String() != wantDates[i] {
			t.Errorf("item %d date = %s, want %s", i, tx.Date, wantDates[i])
		}
		if tx.UserID != u1.ID {
			t.Errorf("item %d belongs to user %d", i, tx.UserID)
		}
	}
	first := list[0]
	if !first.Amount.Equal(decimal.RequireFromString("120.50")) || first.Type != core.Expense ||
		first.Category != "Food" || first.Description != "weekly groceries" {
		t.Errorf("fields not preserved: %+v", first)
	}

	empty, err := s.ListTransactionsForUser(ctx, 9999)
	if err != nil {
		t.Fatalf("list unknown user: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no transactions, got %d", len(empty))
	}
}

func testInvalidTransaction(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	u, err := s.CreateUser(ctx, NewUser("heidi"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	bad := NewTransaction(u.ID, "2025-01-01", core.Expense, "Food", "10")
	bad.Amount = decimal.Zero
	if _, err := s.CreateTransaction(ctx, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	bad = NewTransaction(u.ID, "2025-01-01", core.Expense, "Food", "10")
	bad.Date = core.Date{}
	if _, err := s.CreateTransaction(ctx, bad); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	list, err := s.ListTransactionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("invalid transactions stored: %+v", list)
	}
}
