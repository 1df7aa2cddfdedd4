package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
	"fintrack/internal/forecast"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/report"
)

// ErrNoSession is returned when a session-scoped operation runs without one.
var ErrNoSession = errors.New("no active session")

const DefaultRecentLimit = 10

// NewTransaction carries transaction input for the session's user.
type NewTransaction struct {
	Date        core.Date
	Category    string
	Amount      decimal.Decimal
	Type        core.TransactionType
	Description string
}

// Overview is the dashboard for one user, computed from a single snapshot.
type Overview struct {
	Summary     core.Summary
	Categories  []core.CategoryAmount
	Recent      []core.Transaction
	Projections []forecast.Projection
	LowSavings  bool
}

// LedgerOptions tunes derived views.
type LedgerOptions struct {
	ForecastPeriods int
	RecentLimit     int
}

// LedgerService records transactions and derives views for a session
type LedgerService struct {
	store   ledger.TransactionStore
	reports *report.Builder
	opts    LedgerOptions
	log     *log.StructuredLogger
}

func NewLedgerService(store ledger.TransactionStore, reports *report.Builder, opts LedgerOptions, logger *log.Logger) *LedgerService {
	if opts.ForecastPeriods <= 0 {
		opts.ForecastPeriods = forecast.DefaultPeriods
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	if reports == nil {
		reports = report.NewBuilder()
	}
	return &LedgerService{
		store:   store,
		reports: reports,
		opts:    opts,
		log:     log.NewStructuredLogger(logger.WithComponent(log.ComponentLedger)),
	}
}

// AddTransaction stores a transaction owned by the session's user.
func (s *LedgerService) AddTransaction(ctx context.Context, sess *Session, in NewTransaction) (core.Transaction, error) {
	if sess == nil {
		return core.Transaction{}, ErrNoSession
	}
	candidate := core.Transaction{
		UserID:      sess.UserID(),
		Date:        in.Date,
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Type:        in.Type,
		Description: strings.TrimSpace(in.Description),
	}
	if err := candidate.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t, err := s.store.CreateTransaction(ctx, candidate)
	if err != nil {
		s.log.LogError(ctx, "Failed to store transaction", err, log.ComponentLedger, log.OpCreate,
			log.NewFields().WithUser(sess.UserID(), sess.User.Username))
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	s.log.LogTransactionCreated(ctx, t)
	return t, nil
}

// Transactions returns the session user's transactions in storage order.
func (s *LedgerService) Transactions(ctx context.Context, sess *Session) ([]core.Transaction, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	txs, err := s.store.ListTransactionsForUser(ctx, sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Overview computes the dashboard from one read of the user's transactions.
func (s *LedgerService) Overview(ctx context.Context, sess *Session) (Overview, error) {
	txs, err := s.Transactions(ctx, sess)
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{
		Summary:     aggregate.Summarize(txs),
		Categories:  aggregate.CategoryBreakdown(txs),
		Recent:      aggregate.Recent(txs, s.opts.RecentLimit),
		Projections: forecast.Project(forecast.MonthlyExpenses(txs), sess.User.MonthlyIncome, s.opts.ForecastPeriods),
	}

	savings := forecast.Savings(ov.Projections)
	ov.LowSavings = forecast.IsLowSavings(savings)
	if len(savings) > 0 {
		s.log.LogForecast(ctx, sess.UserID(), len(savings), savings[0], ov.LowSavings)
	}
	return ov, nil
}

// Forecast projects the next periods months of savings. periods <= 0 uses
// the configured default.
func (s *LedgerService) Forecast(ctx context.Context, sess *Session, periods int) ([]forecast.Projection, error) {
	txs, err := s.Transactions(ctx, sess)
	if err != nil {
		return nil, err
	}
	if periods <= 0 {
		periods = s.opts.ForecastPeriods
	}
	return forecast.Project(forecast.MonthlyExpenses(txs), sess.User.MonthlyIncome, periods), nil
}

// Report builds the monthly report for the session's user.
func (s *LedgerService) Report(ctx context.Context, sess *Session, year int, month time.Month) (report.Report, error) {
	txs, err := s.Transactions(ctx, sess)
	if err != nil {
		return report.Report{}, err
	}
	r, err := s.reports.Build(txs, sess.User, year, month)
	if err != nil {
		return report.Report{}, err
	}
	s.log.LogReportBuilt(ctx, r.ID.String(), sess.UserID(), r.Year, r.Month.String(), len(r.Items))
	return r, nil
}
