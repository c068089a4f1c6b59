// Package money holds the rounding conventions every currency figure passes
// through before it crosses a ledger-entry boundary.
package money

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// Round2 rounds to two decimal places, half away from zero. This is the
// convention for every intermediate currency figure (taxes, line items).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundWhole rounds to the nearest whole currency unit with .50 always
// rounding up: 100.40 -> 100, 100.50 -> 101, 999.99 -> 1000. Voucher totals
// use this; the difference becomes the Round Off ledger entry.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// Format2 renders an amount as the fixed two-decimal string the wire format
// requires.
func Format2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromFloat converts a boundary float64 into a decimal. JSON and spreadsheet
// values arrive as floats; they are converted exactly once, here.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
