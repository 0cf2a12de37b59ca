package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/dpgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"pct":      FormatPercentage,
	"duration": FormatDuration,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.SimulationResult
		Description string
		TotalDebt   string
		Ranked      []domain.DebtAccount
		Assumptions []string
	}{
		SimulationResult: result,
		Description:      result.Strategy.Description(),
		TotalDebt:        FormatCurrency(result.TotalDebt()),
		Ranked:           result.InPaymentOrder(),
		Assumptions:      DefaultAssumptions,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
