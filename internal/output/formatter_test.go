package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestResult() *domain.SimulationResult {
	visa := domain.NewDebtAccount("visa", "Visa Rewards", decimal.NewFromInt(4000), decimal.RequireFromString("24.99"))
	visa.CurrentBalance = decimal.Zero
	visa.MonthsToPayoff = 14
	visa.TotalInterest = decimal.RequireFromString("612.40")
	visa.PaymentOrder = 1

	store := domain.NewDebtAccount("store", "Store Card", decimal.NewFromInt(600), decimal.RequireFromString("9.9"))
	store.CurrentBalance = decimal.Zero
	store.MonthsToPayoff = 17
	store.TotalInterest = decimal.RequireFromString("48.15")
	store.PaymentOrder = 2

	return &domain.SimulationResult{
		Strategy:      domain.Avalanche,
		MonthlyBudget: decimal.NewFromInt(350),
		TotalMonths:   17,
		TotalInterest: decimal.RequireFromString("660.55"),
		TotalPaid:     decimal.RequireFromString("5260.55"),
		PerAccount:    []domain.DebtAccount{visa, store},
		Schedule: []domain.MonthSnapshot{
			{
				Month:    1,
				Interest: decimal.RequireFromString("88.25"),
				Paid:     decimal.NewFromInt(350),
				Payments: map[string]decimal.Decimal{"visa": decimal.NewFromInt(325), "store": decimal.NewFromInt(25)},
				Balances: map[string]decimal.Decimal{"visa": decimal.RequireFromString("3758.30"), "store": decimal.RequireFromString("579.95")},
			},
		},
	}
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *domain.SimulationResult

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(result *domain.SimulationResult) ([]byte, error) {
			called = true
			received = result
			return []byte("test output"), nil
		},
	}

	result := buildTestResult()
	out, err := formatter.Format(result)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, result, received, "Should pass the result")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(result *domain.SimulationResult) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestResult(), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "payoff_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "broken",
		F: func(result *domain.SimulationResult) ([]byte, error) {
			return nil, fmt.Errorf("boom")
		},
	}

	_, err := WriteFormatted(formatter, buildTestResult(), "txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"text", "console"},
		{"table", "console"},
		{"verbose", "console-verbose"},
		{"all", "console-verbose"},
		{"csv", "csv"},
		{"json", "json"},
		{"html", "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatAliases(t *testing.T) {
	names := AvailableFormatAliases()
	assert.Contains(t, names, "console")
	assert.Contains(t, names, "verbose")
	assert.Contains(t, names, "html")
	assert.IsIncreasing(t, names)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		months   domain.PayoffMonths
		expected string
	}{
		{domain.PayoffNever, "N/A"},
		{domain.PayoffPending, "N/A"},
		{0, "N/A"},
		{1, "1 month"},
		{5, "5 months"},
		{12, "1 year"},
		{13, "1 year, 1 month"},
		{26, "2 years, 2 months"},
		{720, "60 years"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.months))
		})
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "DEBT PAYOFF PLAN")
	assert.Contains(t, text, "Debt Avalanche")
	assert.Contains(t, text, "$4,600")
	assert.Contains(t, text, "1 year, 5 months")
	assert.Contains(t, text, "Visa Rewards")
	assert.Less(t, strings.Index(text, "Visa Rewards"), strings.Index(text, "Store Card"), "accounts listed in payment order")
	assert.NotContains(t, text, "WARNING")
}

func TestConsoleFormatter_Warning(t *testing.T) {
	result := buildTestResult()
	result.CeilingReached = true
	result.TotalMonths = domain.PayoffNever
	result.Warning = "payment too low to guarantee full payoff within 60 years"

	out, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), "WARNING: payment too low")
	assert.Contains(t, string(out), "N/A")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	text := string(out)
	for _, a := range DefaultAssumptions {
		assert.Contains(t, text, a)
	}
	assert.Contains(t, text, "MONTHLY SCHEDULE")
	assert.Contains(t, text, "$4,338.25")
}

func TestConsoleVerboseFormatter_NoSchedule(t *testing.T) {
	result := buildTestResult()
	result.Schedule = nil

	out, err := ConsoleVerboseFormatter{}.Format(result)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "MONTHLY SCHEDULE")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, []string{"visa", "Visa Rewards", "1", "4000.00", "24.99", "14", "612.40", "avalanche", "350.00"}, records[1])
	assert.Equal(t, "store", records[2][0])
}

func TestCSVSummarizer_NeverPaidOff(t *testing.T) {
	result := buildTestResult()
	result.PerAccount[1].MonthsToPayoff = domain.PayoffNever

	out, err := CSVSummarizer{}.Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Infinity")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "avalanche", decoded["strategy"])
	assert.Equal(t, float64(17), decoded["totalMonths"])
	assert.Equal(t, "660.55", decoded["totalInterest"])
	assert.Contains(t, string(out), "\n  ")

	compact, err := JSONFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestHTMLFormatter(t *testing.T) {
	result := buildTestResult()
	result.PerAccount[0].Name = "<Visa & Co>"
	result.Warning = "careful"

	out, err := HTMLFormatter{}.Format(result)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "&lt;Visa &amp; Co&gt;")
	assert.Contains(t, html, "24.99%")
	assert.Contains(t, html, "1 year, 5 months")
	assert.Contains(t, html, "careful")
}
