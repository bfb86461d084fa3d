package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/debtsim/payoff-calculator/pkg/money"
)

// FormatCurrency formats a decimal as USD with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).Format()
}

// FormatPercentage formats a decimal fraction as a percentage with 2
// decimals, e.g. 0.05 -> "5.00%".
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatMonths renders a month count as "Ny Nm" for readability.
func FormatMonths(months int) string {
	if months < 12 {
		return strconv.Itoa(months) + "m"
	}
	if months%12 == 0 {
		return strconv.Itoa(months/12) + "y"
	}
	return strconv.Itoa(months/12) + "y " + strconv.Itoa(months%12) + "m"
}
