package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Strategy",
		"Type",
		"Total Months",
		"Total Interest",
		"Total Paid",
		"First Payoff",
		"First Payoff Month",
		"Payment Order",
		"Interest Diff from Base",
		"Months Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, strategyType string) []string {
	firstPayoffMonth := ""
	if result.FirstPayoffIn.Known() {
		firstPayoffMonth = formatInt(int(result.FirstPayoffIn))
	}
	return []string{
		string(result.Strategy),
		strategyType,
		formatMonths(result.TotalMonths),
		result.TotalInterest.StringFixed(2),
		result.TotalPaid.StringFixed(2),
		result.FirstPayoff,
		firstPayoffMonth,
		strings.Join(result.PaymentOrder, ";"),
		result.InterestDiffFromBase.StringFixed(2),
		formatInt(result.MonthsDiffFromBase),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
