// Package money provides a thin wrapper over decimal amounts with
// consistent currency formatting for reports.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with financial precision.
type Money struct {
	decimal.Decimal
}

// FromDecimal creates a Money from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromFloat creates a Money from a float64.
func FromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Zero returns a zero Money amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds the amount to cents using banker's rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.RoundBank(2)}
}

// String returns the amount with two decimals and no currency symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format returns the amount as USD with thousands separators, e.g.
// "$12,345.67" or "-$0.25".
func (m Money) Format() string {
	s := m.Decimal.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := "$" + grouped.String() + "." + frac
	if negative {
		return "-" + out
	}
	return out
}

// Min returns the smaller of two Money amounts.
func Min(a, b Money) Money {
	if a.Decimal.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the larger of two Money amounts.
func Max(a, b Money) Money {
	if a.Decimal.GreaterThan(b.Decimal) {
		return a
	}
	return b
}
