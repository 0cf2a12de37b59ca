package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing strategies
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("DEBT PAYOFF STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Strategy: %s\n", compSet.BaseStrategy))
	sb.WriteString(fmt.Sprintf("Monthly Budget: %s\n", money.FormatCurrency(compSet.MonthlyBudget)))
	sb.WriteString(fmt.Sprintf("Total Debt: %s\n", money.FormatCurrency(compSet.TotalDebt)))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan: %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 20
	numWidth := 14

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Months",
		numWidth, "Interest",
		numWidth, "Total Paid",
		numWidth, "First Payoff"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base strategy row
	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	// Alternatives
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Strategy))

			// Lower interest is better
			interestSymbol := tf.deltaSymbol(alt.InterestDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Interest:     %s%s\n",
				interestSymbol,
				money.FormatCurrency(alt.InterestDiffFromBase.Abs())))

			if alt.MonthsDiffFromBase != 0 {
				monthsSymbol := "+"
				if alt.MonthsDiffFromBase < 0 {
					monthsSymbol = ""
				}
				sb.WriteString(fmt.Sprintf("  Months:       %s%d\n", monthsSymbol, alt.MonthsDiffFromBase))
			}

			if len(alt.PaymentOrder) > 0 {
				sb.WriteString(fmt.Sprintf("  Order:        %s\n", strings.Join(alt.PaymentOrder, " > ")))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single strategy row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := string(result.Strategy)
	if isBase {
		name += " (base)"
	}

	firstPayoff := "-"
	if result.FirstPayoffIn.Known() {
		firstPayoff = fmt.Sprintf("month %d", result.FirstPayoffIn)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, formatMonths(result.TotalMonths),
		numWidth, tf.formatDecimal(result.TotalInterest),
		numWidth, tf.formatDecimal(result.TotalPaid),
		numWidth, firstPayoff)
}

// formatDecimal formats a decimal for display, abbreviating large amounts
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "$" + millions.StringFixed(2) + "M"
	}
	return money.FormatCurrency(d)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each strategy
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseStrategy))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		interestChange := "="
		if alt.InterestDiffFromBase.IsPositive() {
			interestChange = "+" + money.FormatCurrency(alt.InterestDiffFromBase)
		} else if alt.InterestDiffFromBase.IsNegative() {
			interestChange = money.FormatCurrency(alt.InterestDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.Strategy, interestChange))
	}

	return sb.String()
}

func formatMonths(m domain.PayoffMonths) string {
	if m.IsNever() {
		return "never"
	}
	return fmt.Sprintf("%d", m)
}
