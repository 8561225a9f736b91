package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTypePrefix(t *testing.T) {
	if got := Income.Prefix(); got != "KK" {
		t.Fatalf("income prefix = %q", got)
	}
	if got := Expense.Prefix(); got != "CHQ" {
		t.Fatalf("expense prefix = %q", got)
	}
}

func TestDraftValidate(t *testing.T) {
	income := &IncomeDetails{Payer: "A", Debit: "50", Credit: "90", Purpose: "test"}
	expense := &ExpenseDetails{Recipient: "B", Debit: "90", Credit: "50", Purpose: "test"}

	cases := []struct {
		name string
		d    Draft
		want error
	}{
		{"valid income", Draft{Type: Income, Amount: decimal.NewFromInt(1000), Date: "2024-01-01", Income: income}, nil},
		{"valid expense", Draft{Type: Expense, Amount: decimal.NewFromInt(300), Date: "2024-01-02", Expense: expense}, nil},
		{"zero amount ok", Draft{Type: Income, Amount: decimal.Zero, Date: "2024-01-01", Income: income}, nil},
		{"unknown type", Draft{Type: "transfer", Amount: decimal.NewFromInt(1), Date: "2024-01-01", Income: income}, ErrInvalidType},
		{"negative amount", Draft{Type: Income, Amount: decimal.NewFromInt(-5), Date: "2024-01-01", Income: income}, ErrInvalidAmount},
		{"bad date", Draft{Type: Income, Amount: decimal.NewFromInt(1), Date: "01/02/2024", Income: income}, ErrInvalidDate},
		{"impossible date", Draft{Type: Income, Amount: decimal.NewFromInt(1), Date: "2024-02-31", Income: income}, ErrInvalidDate},
		{"income without details", Draft{Type: Income, Amount: decimal.NewFromInt(1), Date: "2024-01-01"}, ErrDetailMismatch},
		{"income with expense details", Draft{Type: Income, Amount: decimal.NewFromInt(1), Date: "2024-01-01", Expense: expense}, ErrDetailMismatch},
		{"expense with both details", Draft{Type: Expense, Amount: decimal.NewFromInt(1), Date: "2024-01-01", Income: income, Expense: expense}, ErrDetailMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Type: Income, Amount: decimal.NewFromInt(1000)}
	out := Transaction{Type: Expense, Amount: decimal.NewFromInt(300)}
	if !in.Signed().Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("income signed = %s", in.Signed())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-300)) {
		t.Fatalf("expense signed = %s", out.Signed())
	}
}
