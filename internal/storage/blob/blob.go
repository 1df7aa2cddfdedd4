// Package blob persists the ledger as two flat JSON collections, users.json and
// transactions.json. Every mutation reads the whole collection, modifies it and
// writes it back, so a second process writing the same directory can silently
// overwrite changes.
package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

const (
	UsersFile        = "users.json"
	TransactionsFile = "transactions.json"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

// Open prepares dir and seeds both collections as empty arrays when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, core.Persistence("create ledger directory", err)
	}
	s := &Store{dir: dir}
	for _, name := range []string{UsersFile, TransactionsFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := writeJSON(path, []struct{}{}); err != nil {
				return nil, core.Persistence("initialize "+name, err)
			}
		} else if err != nil {
			return nil, core.Persistence("stat "+name, err)
		}
	}
	return s, nil
}

// Dir returns the directory holding the collections.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return core.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, candidate core.User) (core.User, error) {
	if err := candidate.Validate(); err != nil {
		return core.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return core.User{}, err
	}
	var maxID int64
	for _, u := range users {
		if u.Username == candidate.Username {
			return core.User{}, core.ErrDuplicateUsername
		}
		maxID = max(maxID, u.ID)
	}
	candidate.ID = maxID + 1

	records := make([]userRecord, 0, len(users)+1)
	for _, u := range users {
		records = append(records, toUserRecord(u))
	}
	records = append(records, toUserRecord(candidate))
	if err := writeJSON(s.path(UsersFile), records); err != nil {
		return core.User{}, core.Persistence("write users", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "User saved to ledger blob",
		log.FieldOperation, log.OpCreate, log.FieldUserID, candidate.ID, "users", len(records))
	return candidate, nil
}

func (s *Store) ListTransactionsForUser(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, tx := range all {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) CreateTransaction(ctx context.Context, candidate core.Transaction) (core.Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadTransactions()
	if err != nil {
		return core.Transaction{}, err
	}
	var maxID int64
	records := make([]transactionRecord, 0, len(all)+1)
	for _, tx := range all {
		maxID = max(maxID, tx.ID)
		records = append(records, toTransactionRecord(tx))
	}
	candidate.ID = maxID + 1
	records = append(records, toTransactionRecord(candidate))
	if err := writeJSON(s.path(TransactionsFile), records); err != nil {
		return core.Transaction{}, core.Persistence("write transactions", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Transaction saved to ledger blob",
		log.FieldOperation, log.OpCreate, log.FieldTxID, candidate.ID, log.FieldUserID, candidate.UserID)
	return candidate, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) loadUsers() ([]core.User, error) {
	var records []userRecord
	if err := readJSON(s.path(UsersFile), &records); err != nil {
		return nil, core.Persistence("read users", err)
	}
	users := make([]core.User, 0, len(records))
	for _, r := range records {
		u, err := r.toCore()
		if err != nil {
			return nil, core.Persistence("decode users", err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) loadTransactions() ([]core.Transaction, error) {
	var records []transactionRecord
	if err := readJSON(s.path(TransactionsFile), &records); err != nil {
		return nil, core.Persistence("read transactions", err)
	}
	txs := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		tx, err := r.toCore()
		if err != nil {
			return nil, core.Persistence("decode transactions", err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// readJSON treats a missing file as an empty collection.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON replaces path through a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ ledger.Store = (*Store)(nil)
