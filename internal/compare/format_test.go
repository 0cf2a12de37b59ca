package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	calc := NewMetricsCalculator()
	base := calc.CalculateMetrics(sampleResult(domain.Avalanche, 9, 90))
	alt := calc.CalculateComparison(calc.CalculateMetrics(sampleResult(domain.Snowball, 10, 110)), base)

	compSet := &ComparisonSet{
		BaseStrategy:       domain.Avalanche,
		MonthlyBudget:      decimal.NewFromInt(200),
		TotalDebt:          decimal.NewFromInt(1500),
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
		PlanPath:           "/path/to/plan.yaml",
	}
	summarize(compSet)
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"DEBT PAYOFF STRATEGY COMPARISON",
		"Base Strategy: avalanche",
		"Monthly Budget: $200.00",
		"Total Debt: $1,500.00",
		"Plan: /path/to/plan.yaml",
		"avalanche (base)",
		"COMPARISON TO BASE",
		"Interest:     +$20.00",
		"Months:       +1",
		"Order:        Store Card > Visa",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect deltas without alternatives")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect recommendations section")
	}
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleSet()

	never := *compSet.BaseResult
	never.TotalMonths = domain.PayoffNever
	never.FirstPayoffIn = domain.PayoffNever

	row := formatter.formatRow(&never, 20, 14, false)
	if !strings.Contains(row, "never") {
		t.Errorf("Expected never in row, got %q", row)
	}
	if !strings.Contains(row, " -\n") {
		t.Errorf("Expected dash for missing first payoff, got %q", row)
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(950), "$950.00"},
		{decimal.NewFromFloat(12345.6), "$12,345.60"},
		{decimal.NewFromInt(2500000), "$2.50M"},
	}
	for _, tt := range tests {
		if got := formatter.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	got := formatter.FormatCompact(sampleSet())
	if got != "Base: avalanche | snowball: +$20.00" {
		t.Errorf("Unexpected compact output %q", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and two rows, got %d records", len(records))
	}
	if records[0][0] != "Strategy" {
		t.Errorf("Expected Strategy header, got %s", records[0][0])
	}
	base := records[1]
	if base[0] != "avalanche" || base[1] != "base" || base[2] != "9" || base[3] != "90.00" {
		t.Errorf("Unexpected base row %v", base)
	}
	if base[7] != "Visa;Store Card" {
		t.Errorf("Unexpected payment order column %q", base[7])
	}
	alt := records[2]
	if alt[8] != "20.00" || alt[9] != "1" {
		t.Errorf("Unexpected alternative deltas %v", alt)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["baseStrategy"] != "avalanche" {
			t.Errorf("Expected baseStrategy avalanche, got %v", decoded["baseStrategy"])
		}
		if decoded["interestSaved"] != "20" {
			t.Errorf("Expected interestSaved \"20\", got %v", decoded["interestSaved"])
		}
		if _, ok := decoded["recommendations"]; !ok {
			t.Error("Expected recommendations in JSON")
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Pretty=%v indentation mismatch", pretty)
		}
	}
}
