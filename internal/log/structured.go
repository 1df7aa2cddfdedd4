package log

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts a logger from ctx, falling back to the slog default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides domain event logging on top of Logger
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogUserRegistered logs a successful registration.
func (sl *StructuredLogger) LogUserRegistered(ctx context.Context, u core.User) {
	fields := NewFields().
		WithUser(u.ID, u.Username).
		WithOperation(OpRegister)

	sl.logger.InfoContext(ctx, "User registered", fields.ToSlice()...)
}

// LogLogin logs a login attempt. Failures are warnings, not errors.
func (sl *StructuredLogger) LogLogin(ctx context.Context, username string, success bool) {
	fields := NewFields().WithOperation(OpLogin)
	fields[FieldUsername] = username
	fields[FieldSuccess] = success

	if success {
		sl.logger.InfoContext(ctx, "User logged in", fields.ToSlice()...)
		return
	}
	sl.logger.WarnContext(ctx, "Login rejected", fields.WithErrorType(ErrorTypeAuth).ToSlice()...)
}

// LogTransactionCreated logs a stored transaction
func (sl *StructuredLogger) LogTransactionCreated(ctx context.Context, t core.Transaction) {
	fields := NewFields().
		WithTransaction(t.ID, string(t.Type), t.Category, t.Date.String(), t.Amount).
		WithOperation(OpCreate)
	fields[FieldUserID] = t.UserID

	sl.logger.InfoContext(ctx, "Transaction created", fields.ToSlice()...)
}

// LogForecast logs the first projected saving and whether it triggered a warning.
func (sl *StructuredLogger) LogForecast(ctx context.Context, userID int64, periods int, first decimal.Decimal, low bool) {
	fields := NewFields().WithOperation(OpForecast)
	fields[FieldUserID] = userID
	fields[FieldPeriods] = periods
	fields[FieldAmount] = first.String()
	fields[FieldLowSavings] = low

	level := slog.LevelDebug
	if low {
		level = slog.LevelWarn
	}
	sl.logger.WithComponent(ComponentForecast).Log(ctx, level, "Savings forecast computed", fields.ToSlice()...)
}

// LogReportBuilt logs a generated report
func (sl *StructuredLogger) LogReportBuilt(ctx context.Context, reportID string, userID int64, year int, month string, items int) {
	fields := NewFields().
		WithPeriod(year, month).
		WithOperation(OpReport)
	fields[FieldReportID] = reportID
	fields[FieldUserID] = userID
	fields[FieldItems] = items

	sl.logger.WithComponent(ComponentReport).InfoContext(ctx, "Report built", fields.ToSlice()...)
}

// LogError logs an error with structured context. The error type is derived
// from the core error kinds; an empty component keeps the logger's own.
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithErrorType(ErrorType(err)).
		WithOperation(operation)

	logger := sl.logger
	if component != "" {
		logger = logger.WithComponent(component)
	}
	logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}

// ErrorType classifies err into one of the ErrorType constants.
func ErrorType(err error) string {
	switch {
	// stored data failing validation is still a storage fault
	case errors.Is(err, core.ErrPersistence):
		return ErrorTypeDatabase
	case errors.Is(err, core.ErrValidation):
		return ErrorTypeValidation
	case errors.Is(err, core.ErrInvalidCredentials):
		return ErrorTypeAuth
	case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrEmptyPeriod):
		return ErrorTypeNotFound
	case errors.Is(err, core.ErrDuplicateUsername):
		return ErrorTypeConflict
	default:
		return ErrorTypeInternal
	}
}
