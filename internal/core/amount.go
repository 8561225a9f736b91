// Package core holds the cash-ledger domain types shared by every layer.
//
// Amounts are unit-less so'm values kept as exact decimals; formatting for
// display is the presentation layer's job.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to a non-negative decimal amount.
//
// It accepts both dot (1234.56) and comma (1234,56) decimal separators.
// Returns ErrInvalidAmount for empty, non-numeric, or negative input.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
