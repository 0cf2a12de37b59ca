package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/dpgo/internal/domain"
)

// CSVSummarizer writes one row per account in input order.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ID", "Name", "PaymentOrder", "InitialBalance", "APR", "MonthsToPayoff", "TotalInterest", "Strategy", "MonthlyBudget"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, a := range result.PerAccount {
		row := []string{
			a.ID,
			a.Name,
			strconv.Itoa(a.PaymentOrder),
			a.InitialBalance.StringFixed(2),
			a.APR.String(),
			csvMonths(a.MonthsToPayoff),
			a.TotalInterest.StringFixed(2),
			string(result.Strategy),
			result.MonthlyBudget.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvMonths(m domain.PayoffMonths) string {
	switch {
	case m.IsNever():
		return "Infinity"
	case m.IsPending():
		return ""
	default:
		return strconv.Itoa(int(m))
	}
}
