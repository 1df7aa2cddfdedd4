// Package report assembles monthly transaction reports.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
)

// LineItem is one transaction as it appears in a report.
type LineItem struct {
	Date        core.Date
	Category    string
	Type        core.TransactionType
	Amount      decimal.Decimal
	Description string
}

// Report is a period-bounded export of one user's transactions.
// Items are ordered oldest first.
type Report struct {
	ID          uuid.UUID
	UserID      int64
	Username    string
	Year        int
	Month       time.Month
	GeneratedAt time.Time
	Items       []LineItem
	Summary     core.Summary
}

// Title returns the heading used by renderers, e.g. "Expense Report - March 2025".
func (r Report) Title() string {
	return "Expense Report - " + r.Month.String() + " " + strconv.Itoa(r.Year)
}

// Builder creates reports. The zero value is not usable; use NewBuilder.
type Builder struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// NewBuilder returns a Builder stamping reports with the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now, newID: uuid.New}
}

// WithClock replaces the generation clock.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build keeps the transactions dated within year-month, orders them by date
// (stable on ties) and totals them. It returns core.ErrInvalidMonth for a
// month outside 1..12 and core.ErrEmptyPeriod when nothing matches.
func (b *Builder) Build(txs []core.Transaction, user core.User, year int, month time.Month) (Report, error) {
	if month < time.January || month > time.December {
		return Report{}, core.ErrInvalidMonth
	}

	var selected []core.Transaction
	for _, t := range txs {
		if t.Date.InMonth(year, month) {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		return Report{}, core.ErrEmptyPeriod
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.Before(selected[j].Date.Time)
	})

	items := make([]LineItem, len(selected))
	for i, t := range selected {
		items[i] = LineItem{
			Date:        t.Date,
			Category:    t.Category,
			Type:        t.Type,
			Amount:      t.Amount,
			Description: t.Description,
		}
	}

	return Report{
		ID:          b.newID(),
		UserID:      user.ID,
		Username:    user.Username,
		Year:        year,
		Month:       month,
		GeneratedAt: b.now().UTC(),
		Items:       items,
		Summary:     aggregate.Summarize(selected),
	}, nil
}

// ParseMonth accepts an English month name in any case ("March", "mar") or
// a month number ("3", "03").
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, core.ErrInvalidMonth
		}
		return time.Month(n), nil
	}
	if len(s) < 3 {
		return 0, core.ErrInvalidMonth
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if strings.HasPrefix(name, strings.ToLower(s)) {
			return m, nil
		}
	}
	return 0, core.ErrInvalidMonth
}
