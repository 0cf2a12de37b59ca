package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/dpgo/internal/domain"
)

// ConsoleFormatter renders the compact payoff summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "DEBT PAYOFF PLAN")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	writeSummary(&buf, result)
	fmt.Fprintln(&buf)
	writeAccountTable(&buf, result)

	if result.Warning != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "WARNING: %s\n", result.Warning)
	}

	return buf.Bytes(), nil
}

func writeSummary(w io.Writer, result *domain.SimulationResult) {
	fmt.Fprintf(w, "Strategy:        %s\n", result.Strategy)
	if desc := result.Strategy.Description(); desc != "" {
		fmt.Fprintf(w, "                 %s\n", desc)
	}
	fmt.Fprintf(w, "Monthly Budget:  %s\n", FormatCurrency(result.MonthlyBudget))
	fmt.Fprintf(w, "Total Debt:      %s\n", FormatCurrency(result.TotalDebt()))
	fmt.Fprintf(w, "Debt-Free In:    %s\n", FormatDuration(result.TotalMonths))
	fmt.Fprintf(w, "Total Interest:  %s\n", FormatCurrency(result.TotalInterest))
	fmt.Fprintf(w, "Total Paid:      %s\n", FormatCurrency(result.TotalPaid))
}

func writeAccountTable(w io.Writer, result *domain.SimulationResult) {
	fmt.Fprintf(w, "%-5s %-22s %12s %8s %18s %12s\n", "Order", "Account", "Balance", "APR", "Payoff", "Interest")
	fmt.Fprintln(w, strings.Repeat("-", 82))
	for _, a := range result.InPaymentOrder() {
		fmt.Fprintf(w, "%-5d %-22s %12s %8s %18s %12s\n",
			a.PaymentOrder,
			truncate(a.Label(), 22),
			FormatCurrency(a.InitialBalance),
			FormatPercentage(a.APR),
			FormatDuration(a.MonthsToPayoff),
			FormatCurrency(a.TotalInterest))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
