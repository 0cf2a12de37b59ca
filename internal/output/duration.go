package output

import (
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// FormatDuration renders a payoff month count as "2 years, 3 months".
// Unknown, zero and never-ending payoffs render as "N/A".
func FormatDuration(m domain.PayoffMonths) string {
	if !m.Known() || m == 0 {
		return "N/A"
	}

	years := int(m) / 12
	months := int(m) % 12

	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%s, %s", plural(years, "year"), plural(months, "month"))
	case years > 0:
		return plural(years, "year")
	default:
		return plural(months, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatCurrency formats a dollar amount for reports.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FormatCurrency(amount)
}

// FormatPercentage formats an APR percentage for reports.
func FormatPercentage(pct decimal.Decimal) string {
	return money.FormatPercentage(pct)
}
