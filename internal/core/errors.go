package core

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input validation failure.
var ErrValidation = errors.New("validation error")

var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidIncome      = fmt.Errorf("%w: monthly income must be greater than zero", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date is required (YYYY-MM-DD)", ErrValidation)
	ErrInvalidMonth       = fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	ErrInvalidType        = fmt.Errorf("%w: type must be income or expense", ErrValidation)
	ErrEmptyUsername      = fmt.Errorf("%w: username is required", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password too short (min %d)", ErrValidation, MinPasswordLength)
	ErrEmptyEmail         = fmt.Errorf("%w: email is required", ErrValidation)
	ErrEmptyCategory      = fmt.Errorf("%w: category is required", ErrValidation)
	ErrCategoryTooLong    = fmt.Errorf("%w: category too long (max %d characters)", ErrValidation, MaxCategoryLength)
	ErrEmptyDescription   = fmt.Errorf("%w: description is required", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long (max %d characters)", ErrValidation, MaxDescriptionLength)
	ErrMissingOwner       = fmt.Errorf("%w: transaction must belong to a user", ErrValidation)
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyPeriod        = errors.New("no transactions found for this period")
	ErrPersistence        = errors.New("persistence error")
)

// PersistenceError reports a failure of the underlying storage mechanism.
// It matches ErrPersistence with errors.Is and unwraps to the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Persistence wraps err as a *PersistenceError. A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
