package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter adds the modeling assumptions and the yearly and
// monthly schedule to the console summary. The schedule sections appear only
// when the simulation recorded one.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 82))
	fmt.Fprintln(&buf, "DETAILED DEBT PAYOFF ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 82))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeSummary(&buf, result)
	fmt.Fprintln(&buf)
	writeAccountTable(&buf, result)

	if len(result.Schedule) > 0 {
		fmt.Fprintln(&buf)
		writeYearlySummary(&buf, result)
		fmt.Fprintln(&buf)
		writeMonthlySchedule(&buf, result)
	}

	if result.Warning != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "WARNING: %s\n", result.Warning)
	}

	return buf.Bytes(), nil
}

func writeYearlySummary(buf *bytes.Buffer, result *domain.SimulationResult) {
	fmt.Fprintln(buf, "YEARLY SUMMARY")
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	fmt.Fprintf(buf, "%-6s %16s %16s %16s\n", "Year", "Paid", "Interest", "Remaining")

	paid, interest := decimal.Zero, decimal.Zero
	for i, month := range result.Schedule {
		paid = paid.Add(month.Paid)
		interest = interest.Add(month.Interest)
		if month.Month%12 == 0 || i == len(result.Schedule)-1 {
			year := (month.Month + 11) / 12
			fmt.Fprintf(buf, "%-6d %16s %16s %16s\n", year,
				FormatCurrency(paid), FormatCurrency(interest), FormatCurrency(remaining(month)))
			paid, interest = decimal.Zero, decimal.Zero
		}
	}
}

func writeMonthlySchedule(buf *bytes.Buffer, result *domain.SimulationResult) {
	ranked := result.InPaymentOrder()

	fmt.Fprintln(buf, "MONTHLY SCHEDULE")
	fmt.Fprintln(buf, strings.Repeat("-", 82))
	fmt.Fprintf(buf, "%-6s", "Month")
	for _, a := range ranked {
		fmt.Fprintf(buf, " %14s", truncate(a.Label(), 14))
	}
	fmt.Fprintf(buf, " %14s\n", "Remaining")

	for _, month := range result.Schedule {
		fmt.Fprintf(buf, "%-6d", month.Month)
		for _, a := range ranked {
			payment, ok := month.Payments[a.ID]
			cell := "-"
			if ok {
				cell = FormatCurrency(payment)
			}
			fmt.Fprintf(buf, " %14s", cell)
		}
		fmt.Fprintf(buf, " %14s\n", FormatCurrency(remaining(month)))
	}
}

// remaining sums the balances left at the end of a month. Accounts paid off
// in earlier months are absent from the snapshot.
func remaining(month domain.MonthSnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, b := range month.Balances {
		total = total.Add(b)
	}
	return total
}
