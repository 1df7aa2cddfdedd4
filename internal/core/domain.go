package core

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	MinPasswordLength    = 6
	MaxCategoryLength    = 50
	MaxDescriptionLength = 200

	// NoDescription is the placeholder the presentation layer stores when the
	// user leaves the description blank.
	NoDescription = "-"

	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	// User owns transactions. Password is kept exactly as entered.
	User struct {
		ID            int64
		Username      string
		Password      string
		Email         string
		MonthlyIncome decimal.Decimal
	}

	Transaction struct {
		ID          int64
		UserID      int64
		Date        Date
		Category    string
		Amount      decimal.Decimal
		Type        TransactionType
		Description string
	}
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// ParseTransactionType accepts "income" or "expense" in any letter case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date in YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM prefix used to group transactions by month.
func (d Date) MonthKey() string {
	return d.Format(MonthLayout)
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	y, m, _ := d.Date()
	return y == year && m == month
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(u.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if !u.MonthlyIncome.IsPositive() {
		return ErrInvalidIncome
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.UserID <= 0 {
		return ErrMissingOwner
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if utf8.RuneCountInString(t.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
