package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// Session identifies the authenticated user for a sequence of operations.
// It replaces any process-wide notion of a current user: every session-scoped
// operation receives it explicitly.
type Session struct {
	User      core.User
	StartedAt time.Time
}

// UserID returns the owner of the session.
func (s *Session) UserID() int64 {
	return s.User.ID
}

// RegisterRequest carries registration input as entered.
type RegisterRequest struct {
	Username      string
	Password      string
	Email         string
	MonthlyIncome decimal.Decimal
}

// AccountService handles registration and login
type AccountService struct {
	users ledger.UserStore
	log   *log.StructuredLogger
	now   func() time.Time
}

func NewAccountService(users ledger.UserStore, logger *log.Logger) *AccountService {
	return &AccountService{
		users: users,
		log:   log.NewStructuredLogger(logger.WithComponent(log.ComponentAccount)),
		now:   time.Now,
	}
}

// Register validates and stores a new user.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (core.User, error) {
	candidate := core.User{
		Username:      strings.TrimSpace(req.Username),
		Password:      req.Password,
		Email:         strings.TrimSpace(req.Email),
		MonthlyIncome: req.MonthlyIncome,
	}
	if err := candidate.Validate(); err != nil {
		return core.User{}, err
	}

	u, err := s.users.CreateUser(ctx, candidate)
	if err != nil {
		if !errors.Is(err, core.ErrDuplicateUsername) {
			s.log.LogError(ctx, "Failed to register user", err, log.ComponentAccount, log.OpRegister,
				log.NewFields().WithUser(0, candidate.Username))
		}
		return core.User{}, fmt.Errorf("register %q: %w", candidate.Username, err)
	}
	s.log.LogUserRegistered(ctx, u)
	return u, nil
}

// Login matches the username exactly and compares the stored password as
// entered. Unknown users and wrong passwords both yield
// core.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.FindUserByUsername(ctx, username)
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		s.log.LogLogin(ctx, username, false)
		return nil, core.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("login: %w", err)
	}
	if u.Password != password {
		s.log.LogLogin(ctx, username, false)
		return nil, core.ErrInvalidCredentials
	}

	s.log.LogLogin(ctx, username, true)
	return &Session{User: u, StartedAt: s.now().UTC()}, nil
}
