// Package forecast projects future monthly savings from expense history.
//
// The projection is a naive two-point trend, not a regression: the delta
// between the two most recent months, halved, is added once per period on top
// of the mean of all months. Longer history only moves the mean.
package forecast

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
)

// DefaultPeriods is the number of future months projected when the caller has no preference.
const DefaultPeriods = 3

var (
	// LowSavingsThreshold is the predicted saving below which users are warned.
	LowSavingsThreshold = decimal.NewFromInt(1000)

	// noHistorySavingsRate applies when there is no expense history at all.
	noHistorySavingsRate = decimal.RequireFromString("0.2")

	two = decimal.NewFromInt(2)
)

// Projection is one future month of the forecast.
type Projection struct {
	Period           int // 1-based
	PredictedExpense decimal.Decimal
	PredictedSaving  decimal.Decimal
}

// MonthlyExpenses groups expense transactions by YYYY-MM, ascending by month.
func MonthlyExpenses(txs []core.Transaction) []core.MonthTotal {
	totals := map[string]decimal.Decimal{}
	for _, t := range aggregate.FilterByType(txs, core.Expense) {
		key := t.Date.MonthKey()
		totals[key] = totals[key].Add(t.Amount)
	}
	out := make([]core.MonthTotal, 0, len(totals))
	for month, total := range totals {
		out = append(out, core.MonthTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Project computes periods projections from chronologically ordered history.
// With no history, the predicted saving is 20% of monthlyIncome and the
// predicted expense is the remainder. Savings are clamped at zero; predicted
// expenses are not.
func Project(history []core.MonthTotal, monthlyIncome decimal.Decimal, periods int) []Projection {
	if periods <= 0 {
		return []Projection{}
	}
	out := make([]Projection, 0, periods)

	if len(history) == 0 {
		saving := monthlyIncome.Mul(noHistorySavingsRate)
		for i := 1; i <= periods; i++ {
			out = append(out, Projection{
				Period:           i,
				PredictedExpense: monthlyIncome.Sub(saving),
				PredictedSaving:  saving,
			})
		}
		return out
	}

	sum := decimal.Zero
	for _, m := range history {
		sum = sum.Add(m.Total)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(history))))

	trend := decimal.Zero
	if n := len(history); n > 1 {
		trend = history[n-1].Total.Sub(history[n-2].Total).Div(two)
	}

	for i := 1; i <= periods; i++ {
		expense := avg.Add(trend.Mul(decimal.NewFromInt(int64(i))))
		saving := decimal.Max(monthlyIncome.Sub(expense), decimal.Zero)
		out = append(out, Projection{
			Period:           i,
			PredictedExpense: expense,
			PredictedSaving:  saving,
		})
	}
	return out
}

// Forecast returns the predicted saving for each of the next periods months.
func Forecast(history []core.MonthTotal, monthlyIncome decimal.Decimal, periods int) []decimal.Decimal {
	return Savings(Project(history, monthlyIncome, periods))
}

// Savings extracts the predicted savings of projections, in period order.
func Savings(projections []Projection) []decimal.Decimal {
	out := make([]decimal.Decimal, len(projections))
	for i, p := range projections {
		out[i] = p.PredictedSaving
	}
	return out
}

// IsLowSavings reports whether the first predicted saving is below LowSavingsThreshold.
func IsLowSavings(savings []decimal.Decimal) bool {
	return len(savings) > 0 && savings[0].LessThan(LowSavingsThreshold)
}
