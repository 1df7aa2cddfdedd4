// Package aggregate derives dashboard views from a user's transactions.
// Every function is pure and leaves its input untouched.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Summarize totals income and expense. Balance may be negative.
func Summarize(txs []core.Transaction) core.Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			income = income.Add(t.Amount)
		case core.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return core.Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// CategoryBreakdown sums expense amounts per category in first-seen order.
// Income transactions contribute nothing.
func CategoryBreakdown(txs []core.Transaction) []core.CategoryAmount {
	var out []core.CategoryAmount
	index := map[string]int{}
	for _, t := range FilterByType(txs, core.Expense) {
		i, ok := index[t.Category]
		if !ok {
			index[t.Category] = len(out)
			out = append(out, core.CategoryAmount{Name: t.Category, Amount: t.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}

// Share returns part as a percentage of total rounded to one decimal place,
// or zero when total is not positive.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).Round(1)
}

// Recent returns transactions newest first, keeping storage order among equal
// dates, truncated to limit. A limit <= 0 keeps everything.
func Recent(txs []core.Transaction, limit int) []core.Transaction {
	out := append([]core.Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterByType keeps the transactions of the given type in their original order.
func FilterByType(txs []core.Transaction, typ core.TransactionType) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
