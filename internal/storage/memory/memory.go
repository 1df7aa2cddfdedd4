package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Store keeps the ledger in process memory. Nothing survives a restart.
type Store struct {
	mu     sync.Mutex
	users  []core.User
	txs    []core.Transaction
	nextID struct{ user, tx int64 }
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (s *Store) CreateUser(_ context.Context, candidate core.User) (core.User, error) {
	if err := candidate.Validate(); err != nil {
		return core.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == candidate.Username {
			return core.User{}, core.ErrDuplicateUsername
		}
	}
	s.nextID.user++
	candidate.ID = s.nextID.user
	s.users = append(s.users, candidate)
	return candidate, nil
}

func (s *Store) ListTransactionsForUser(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) CreateTransaction(_ context.Context, candidate core.Transaction) (core.Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID.tx++
	candidate.ID = s.nextID.tx
	s.txs = append(s.txs, candidate)
	return candidate, nil
}

var _ ledger.Store = (*Store)(nil)
