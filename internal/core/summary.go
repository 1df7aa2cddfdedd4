package core

import "github.com/shopspring/decimal"

// Summary aggregates income and expense for a set of transactions.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthTotal is the summed expense of one calendar month (Month is YYYY-MM).
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}
