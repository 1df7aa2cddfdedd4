package blob

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// On-disk shapes. Keys and numeric amounts match the browser ledger layout so
// existing exports load unchanged.
type (
	userRecord struct {
		ID            int64       `json:"id"`
		Username      string      `json:"username"`
		Password      string      `json:"password"`
		Email         string      `json:"email"`
		MonthlyIncome json.Number `json:"monthlyIncome"`
	}

	transactionRecord struct {
		ID          int64       `json:"id"`
		UserID      int64       `json:"userId"`
		Date        core.Date   `json:"date"`
		Category    string      `json:"category"`
		Amount      json.Number `json:"amount"`
		Type        string      `json:"type"`
		Description string      `json:"description"`
	}
)

func toUserRecord(u core.User) userRecord {
	return userRecord{
		ID:            u.ID,
		Username:      u.Username,
		Password:      u.Password,
		Email:         u.Email,
		MonthlyIncome: json.Number(u.MonthlyIncome.String()),
	}
}

func (r userRecord) toCore() (core.User, error) {
	income, err := parseNumber(r.MonthlyIncome)
	if err != nil {
		return core.User{}, fmt.Errorf("user %d monthlyIncome: %w", r.ID, err)
	}
	return core.User{
		ID:            r.ID,
		Username:      r.Username,
		Password:      r.Password,
		Email:         r.Email,
		MonthlyIncome: income,
	}, nil
}

func toTransactionRecord(t core.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date,
		Category:    t.Category,
		Amount:      json.Number(t.Amount.String()),
		Type:        string(t.Type),
		Description: t.Description,
	}
}

func (r transactionRecord) toCore() (core.Transaction, error) {
	amount, err := parseNumber(r.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d amount: %w", r.ID, err)
	}
	typ := core.TransactionType(r.Type)
	if err := typ.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d type %q: %w", r.ID, r.Type, err)
	}
	return core.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date,
		Category:    r.Category,
		Amount:      amount,
		Type:        typ,
		Description: r.Description,
	}, nil
}

func parseNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
