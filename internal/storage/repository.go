package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dbPath, creating its directory, and applies
// pending migrations. Log records go to the logger carried by ctx.
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, core.Persistence("create db directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, core.Persistence("open sqlite database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, core.Persistence("ping database", err)
	}

	if err := RunMigrations(ctx, dbPath); err != nil {
		db.Close()
		return nil, core.Persistence("migrate", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const userColumns = `id, username, password, email, monthly_income`

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, core.Persistence("list users", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, core.Persistence("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Persistence("list users", err)
	}
	return users, nil
}

func (r *SQLiteRepository) FindUserByUsername(ctx context.Context, username string) (core.User, error) {
	// Default BINARY collation keeps the comparison case-sensitive
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.User{}, core.Persistence("find user", err)
	}
	return u, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, candidate core.User) (core.User, error) {
	if err := candidate.Validate(); err != nil {
		return core.User{}, err
	}
	if _, err := r.FindUserByUsername(ctx, candidate.Username); err == nil {
		return core.User{}, core.ErrDuplicateUsername
	} else if !errors.Is(err, core.ErrUserNotFound) {
		return core.User{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, email, monthly_income) VALUES (?, ?, ?, ?)`,
		candidate.Username, candidate.Password, candidate.Email, candidate.MonthlyIncome.String())
	if err != nil {
		if isUniqueConstraintError(err) {
			return core.User{}, core.ErrDuplicateUsername
		}
		return core.User{}, core.Persistence("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, core.Persistence("create user", err)
	}
	candidate.ID = id

	log.FromContext(ctx).WithComponent(log.ComponentStorage).InfoContext(ctx, "User saved to SQLite",
		log.FieldOperation, log.OpCreate, log.FieldUserID, id, log.FieldUsername, candidate.Username)
	return candidate, nil
}

const transactionColumns = `id, user_id, date, category, amount, type, description`

func (r *SQLiteRepository) ListTransactionsForUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, core.Persistence("list transactions", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx   core.Transaction
			date string
			typ  string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &date, &tx.Category, &tx.Amount, &typ, &tx.Description); err != nil {
			return nil, core.Persistence("scan transaction", err)
		}
		if tx.Date, err = core.ParseDate(date); err != nil {
			return nil, core.Persistence("scan transaction", fmt.Errorf("transaction %d date %q: %w", tx.ID, date, err))
		}
		tx.Type = core.TransactionType(typ)
		if err := tx.Type.Validate(); err != nil {
			return nil, core.Persistence("scan transaction", fmt.Errorf("transaction %d type %q: %w", tx.ID, typ, err))
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Persistence("list transactions", err)
	}
	return txs, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, candidate core.Transaction) (core.Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return core.Transaction{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, date, category, amount, type, description) VALUES (?, ?, ?, ?, ?, ?)`,
		candidate.UserID, candidate.Date.String(), candidate.Category, candidate.Amount.String(),
		string(candidate.Type), candidate.Description)
	if err != nil {
		return core.Transaction{}, core.Persistence("create transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, core.Persistence("create transaction", err)
	}
	candidate.ID = id

	log.FromContext(ctx).WithComponent(log.ComponentStorage).InfoContext(ctx, "Transaction saved to SQLite",
		log.FieldOperation, log.OpCreate,
		log.FieldTxID, id,
		log.FieldUserID, candidate.UserID,
		log.FieldTxType, string(candidate.Type),
		log.FieldAmount, candidate.Amount.String(),
		log.FieldDate, candidate.Date.String())

	return candidate, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.MonthlyIncome)
	return u, err
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || strings.Contains(s, "constraint failed: UNIQUE")
}

var _ ledger.Store = (*SQLiteRepository)(nil)
