package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-03-09 ")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2025-03-09" || d.MonthKey() != "2025-03" {
		t.Fatalf("unexpected date: %s (%s)", d, d.MonthKey())
	}
	if !d.InMonth(2025, time.March) || d.InMonth(2024, time.March) {
		t.Fatalf("InMonth mismatch for %s", d)
	}

	for _, in := range []string{"", "2025-13-01", "09/03/2025", "2025-02-30"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrValidation) {
			t.Fatalf("%q expected validation error, got %v", in, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	in := struct {
		Date Date `json:"date"`
	}{Date: NewDate(2024, 11, 5)}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":"2024-11-05"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var out struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Date.Equal(in.Date.Time) {
		t.Fatalf("round trip mismatch: %s != %s", out.Date, in.Date)
	}
}

func TestParseTransactionType(t *testing.T) {
	if typ, err := ParseTransactionType(" Expense "); err != nil || typ != Expense {
		t.Fatalf("expected expense, got %q (err=%v)", typ, err)
	}
	if _, err := ParseTransactionType("transfer"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	good := User{Username: "asha", Password: "secret1", Email: "asha@example.com", MonthlyIncome: decimal.NewFromInt(50000)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(u *User)
		want   error
	}{
		{"empty username", func(u *User) { u.Username = "  " }, ErrEmptyUsername},
		{"short password", func(u *User) { u.Password = "abc" }, ErrPasswordTooShort},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"zero income", func(u *User) { u.MonthlyIncome = decimal.Zero }, ErrInvalidIncome},
		{"negative income", func(u *User) { u.MonthlyIncome = decimal.NewFromInt(-1) }, ErrInvalidIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := good
			tt.mutate(&u)
			err := u.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() = %v, want a validation error", err)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		UserID:      1,
		Date:        NewDate(2025, 1, 1),
		Category:    "Food",
		Amount:      decimal.NewFromInt(100),
		Type:        Expense,
		Description: "groceries",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := make([]byte, MaxDescriptionLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name   string
		mutate func(tx *Transaction)
		want   error
	}{
		{"no owner", func(tx *Transaction) { tx.UserID = 0 }, ErrMissingOwner},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"zero amount", func(tx *Transaction) { tx.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = " " }, ErrEmptyCategory},
		{"empty description", func(tx *Transaction) { tx.Description = "" }, ErrEmptyDescription},
		{"long description", func(tx *Transaction) { tx.Description = string(long) }, ErrDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := good
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("write users", cause)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap, got %v", err)
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "write users" {
		t.Fatalf("expected *PersistenceError with op, got %#v", err)
	}
	if Persistence("noop", nil) != nil {
		t.Fatalf("nil cause must stay nil")
	}
}
