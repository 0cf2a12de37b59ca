package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/dpgo/internal/money"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *SolverResult) string {
	var sb strings.Builder

	sb.WriteString("MINIMUM BUDGET SOLVER\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	req := result.Request
	sb.WriteString(fmt.Sprintf("Strategy:        %s\n", req.Request.Strategy))
	sb.WriteString(fmt.Sprintf("Goal:            %s\n", tf.formatGoal(req)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED BUDGET\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Budget:  %s\n", money.FormatCurrency(result.Budget)))
	sb.WriteString(fmt.Sprintf("Minimums:        %s\n", money.FormatCurrency(result.MinimumBudget)))
	sb.WriteString(fmt.Sprintf("Above Minimums:  %s\n", money.FormatCurrency(result.Budget.Sub(result.MinimumBudget))))
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Debt-Free In:    %s months\n", result.TotalMonths))
	sb.WriteString(fmt.Sprintf("Total Interest:  %s\n", money.FormatCurrency(result.TotalInterest)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatStrategies formats results from several strategies
func (tf *TableFormatter) FormatStrategies(result *StrategySolveResult) string {
	var sb strings.Builder

	sb.WriteString("MINIMUM BUDGET BY STRATEGY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-15s %15s %15s %15s\n", "Strategy", "Budget", "Months", "Interest"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-15s %15s %15s %15s\n",
			res.Request.Request.Strategy,
			money.FormatCurrency(res.Budget),
			res.TotalMonths.String(),
			money.FormatCurrency(res.TotalInterest)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatGoal(req SolverRequest) string {
	if req.Goal == GoalMaxInterest {
		return fmt.Sprintf("interest at most %s", money.FormatCurrency(req.MaxInterest))
	}
	return fmt.Sprintf("debt-free within %d months", req.TargetMonths)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}
