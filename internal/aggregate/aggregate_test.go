package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func tx(date string, typ core.TransactionType, category, amount string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		UserID:      1,
		Date:        d,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Description: core.NoDescription,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                     string
		txs                      []core.Transaction
		income, expense, balance string
	}{
		{name: "empty", txs: nil, income: "0", expense: "0", balance: "0"},
		{
			name: "mixed",
			txs: []core.Transaction{
				tx("2025-01-01", core.Income, "Salary", "50000"),
				tx("2025-01-03", core.Expense, "Food", "1200.50"),
				tx("2025-01-04", core.Expense, "Rent", "15000"),
				tx("2025-01-10", core.Income, "Freelance", "2500.25"),
			},
			income: "52500.25", expense: "16200.50", balance: "36299.75",
		},
		{
			name: "negative balance",
			txs: []core.Transaction{
				tx("2025-01-01", core.Income, "Salary", "100"),
				tx("2025-01-02", core.Expense, "Food", "250"),
			},
			income: "100", expense: "250", balance: "-150",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.txs)
			if !s.TotalIncome.Equal(dec(tt.income)) || !s.TotalExpense.Equal(dec(tt.expense)) || !s.Balance.Equal(dec(tt.balance)) {
				t.Fatalf("Summarize() = %s/%s/%s, want %s/%s/%s",
					s.TotalIncome, s.TotalExpense, s.Balance, tt.income, tt.expense, tt.balance)
			}
			if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)) {
				t.Fatalf("balance %s != income - expense", s.Balance)
			}
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-05", core.Expense, "Transport", "40"),
		tx("2025-01-01", core.Income, "Salary", "50000"),
		tx("2025-01-02", core.Expense, "Food", "100"),
		tx("2025-01-03", core.Expense, "Transport", "60"),
		tx("2025-01-04", core.Expense, "Bills", "900"),
		tx("2025-01-06", core.Expense, "Food", "25.5"),
	}

	got := CategoryBreakdown(txs)
	want := []core.CategoryAmount{
		{Name: "Transport", Amount: dec("100")},
		{Name: "Food", Amount: dec("125.5")},
		{Name: "Bills", Amount: dec("900")},
	}
	if len(got) != len(want) {
		t.Fatalf("CategoryBreakdown() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Name != want[i].Name || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("item %d = %s %s, want %s %s", i, got[i].Name, got[i].Amount, want[i].Name, want[i].Amount)
		}
	}
}

func TestCategoryBreakdownIncomeOnly(t *testing.T) {
	got := CategoryBreakdown([]core.Transaction{
		tx("2025-01-01", core.Income, "Salary", "50000"),
		tx("2025-02-01", core.Income, "Salary", "50000"),
	})
	if len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", got)
	}
}

func TestShare(t *testing.T) {
	if got := Share(dec("1"), dec("3")); !got.Equal(dec("33.3")) {
		t.Errorf("Share(1, 3) = %s", got)
	}
	if got := Share(dec("5"), decimal.Zero); !got.IsZero() {
		t.Errorf("Share(5, 0) = %s", got)
	}
}

func TestRecent(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-10", core.Expense, "A", "1"),
		tx("2025-03-01", core.Expense, "B", "1"),
		tx("2025-01-10", core.Income, "C", "1"),
		tx("2024-12-31", core.Expense, "D", "1"),
		tx("2025-02-14", core.Expense, "E", "1"),
	}

	got := Recent(txs, 0)
	wantOrder := []string{"B", "E", "A", "C", "D"}
	for i, c := range wantOrder {
		if got[i].Category != c {
			t.Fatalf("Recent order = %v, want %v", categories(got), wantOrder)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date.Time) {
			t.Fatalf("listing not non-increasing at %d", i)
		}
	}

	if top := Recent(txs, 2); len(top) != 2 || top[0].Category != "B" || top[1].Category != "E" {
		t.Fatalf("Recent(2) = %v", categories(top))
	}
	if txs[0].Category != "A" || txs[1].Category != "B" {
		t.Fatalf("input was reordered: %v", categories(txs))
	}
}

func TestFilterByType(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-01", core.Income, "Salary", "1"),
		tx("2025-01-02", core.Expense, "Food", "1"),
		tx("2025-01-03", core.Expense, "Rent", "1"),
	}
	got := FilterByType(txs, core.Expense)
	if len(got) != 2 || got[0].Category != "Food" || got[1].Category != "Rent" {
		t.Fatalf("FilterByType() = %v", categories(got))
	}
}

func categories(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.Category
	}
	return out
}
