// Package ledger defines the Ledger Store ports. The store exclusively owns the
// user and transaction sets; everything else reads through these interfaces.
package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for storage adapters.
type (
	UserStore interface {
		ListUsers(ctx context.Context) ([]core.User, error)
		// FindUserByUsername returns core.ErrUserNotFound when no user matches exactly.
		FindUserByUsername(ctx context.Context, username string) (core.User, error)
		// CreateUser assigns a fresh ID. It fails with core.ErrDuplicateUsername
		// on a case-sensitive match and leaves the store unmodified.
		CreateUser(ctx context.Context, candidate core.User) (core.User, error)
	}

	TransactionStore interface {
		// ListTransactionsForUser returns the user's transactions in storage order.
		ListTransactionsForUser(ctx context.Context, userID int64) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, candidate core.Transaction) (core.Transaction, error)
	}

	Store interface {
		UserStore
		TransactionStore
	}
)
