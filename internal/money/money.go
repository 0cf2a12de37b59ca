// Package money holds the cent-level arithmetic helpers shared by the payoff
// engine, the ledger and the formatters.
package money

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	// Epsilon is the tolerance below which a balance counts as paid off.
	Epsilon = decimal.NewFromFloat(0.005)

	// Hundred and Twelve are used to turn an APR percentage into a monthly rate.
	Hundred = decimal.NewFromInt(100)
	Twelve  = decimal.NewFromInt(12)
)

// RoundCents rounds an amount to the nearest cent.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Cents converts an amount to whole cents, rounding half away from zero.
func Cents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromCents converts whole cents back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// IsZero reports whether amount is within Epsilon of zero.
func IsZero(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(Epsilon)
}

// NonNegative clamps negative amounts to zero.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// FromFloat converts a float coming from an untrusted source (flags, REAL
// columns, JSON numbers) into a decimal. NaN and infinities become zero so
// they can never contaminate a simulation.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// MonthlyRate converts an APR expressed in percent (18.99) to a monthly
// periodic rate (0.015825).
func MonthlyRate(apr decimal.Decimal) decimal.Decimal {
	if !apr.IsPositive() {
		return decimal.Zero
	}
	return apr.Div(Hundred).Div(Twelve)
}

// FormatCurrency formats an amount as US dollars with thousands grouping,
// e.g. "$1,234.50" or "-$12.00".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := RoundCents(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", rounded.InexactFloat64())
}

// FormatPercentage formats a percentage value such as 24 as "24.00%".
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}
