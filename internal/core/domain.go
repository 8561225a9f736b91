package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// DateLayout is the fixed format of a transaction's business date.
const DateLayout = "2006-01-02"

type (
	// Type discriminates the two transaction kinds.
	Type string

	// IncomeDetails carries the descriptive fields of a kirim (cash receipt)
	// order. The ledger stores and echoes them without interpretation.
	IncomeDetails struct {
		Payer   string `json:"payer"`
		Debit   string `json:"debit"`
		Credit  string `json:"credit"`
		Purpose string `json:"purpose"`
		Notes   string `json:"notes"`
	}

	// ExpenseDetails carries the descriptive fields of a chiqim (cash
	// disbursement) order.
	ExpenseDetails struct {
		Recipient string `json:"recipient"`
		Debit     string `json:"debit"`
		Credit    string `json:"credit"`
		DocRef    string `json:"docRef"`
		Purpose   string `json:"purpose"`
	}

	// Transaction is a finalized ledger record. ID, OrderNumber, Type and
	// CreatedAt are assigned at creation and never change. Exactly one of
	// Income/Expense is set, matching Type.
	Transaction struct {
		ID          string          `json:"id"`
		OrderNumber string          `json:"orderNumber"`
		Type        Type            `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
		Income      *IncomeDetails  `json:"income,omitempty"`
		Expense     *ExpenseDetails `json:"expense,omitempty"`
	}

	// Draft is the caller-supplied input for adding a transaction. The ledger
	// assigns ID, OrderNumber and CreatedAt itself; a draft never carries them.
	Draft struct {
		Type    Type
		Amount  decimal.Decimal
		Date    string
		Income  *IncomeDetails
		Expense *ExpenseDetails
	}
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrDetailMismatch = errors.New("details do not match transaction type")
)

// Valid reports whether t is one of the two known types.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// Prefix returns the human-facing order number prefix for the type.
func (t Type) Prefix() string {
	if t == Income {
		return "KK"
	}
	return "CHQ"
}

// Signed returns the amount with the sign the type contributes to a balance:
// positive for income, negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Validate checks the structural invariants of a stored transaction.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(t.OrderNumber) == "" {
		return errors.New("missing order number")
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	return validateDetails(t.Type, t.Income, t.Expense)
}

// Validate checks a draft at the ledger boundary. Malformed input is rejected
// here; the ledger's add contract assumes a well-formed draft.
func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if d.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := ValidateDate(d.Date); err != nil {
		return err
	}
	return validateDetails(d.Type, d.Income, d.Expense)
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func validateDetails(t Type, in *IncomeDetails, out *ExpenseDetails) error {
	switch t {
	case Income:
		if in == nil || out != nil {
			return ErrDetailMismatch
		}
	case Expense:
		if out == nil || in != nil {
			return ErrDetailMismatch
		}
	}
	return nil
}
