package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
)

// SolveStrategies solves the same goal under each strategy and picks the one
// needing the smallest budget. Strategies whose goal is unreachable are
// skipped; an error is returned only if none succeeds.
func (s *Solver) SolveStrategies(
	ctx context.Context,
	req SolverRequest,
	strategies []domain.Strategy,
) (*StrategySolveResult, error) {

	if len(strategies) == 0 {
		strategies = []domain.Strategy{domain.Avalanche, domain.Snowball}
	}

	result := &StrategySolveResult{}
	var lastErr error

	for _, strategy := range strategies {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stratReq := req
		stratReq.Request.Strategy = strategy

		res, err := s.Solve(ctx, stratReq)
		if err != nil {
			lastErr = err
			continue
		}
		result.Results = append(result.Results, *res)
	}

	if len(result.Results) == 0 {
		return nil, &SolverError{
			Operation: "solve_strategies",
			Message:   "no strategy reached the goal",
			Cause:     lastErr,
		}
	}

	for i := range result.Results {
		r := &result.Results[i]
		if result.Best == nil || r.Budget.LessThan(result.Best.Budget) ||
			(r.Budget.Equal(result.Best.Budget) && r.TotalInterest.LessThan(result.Best.TotalInterest)) {
			result.Best = r
		}
	}

	result.Recommendations = generateRecommendations(result)
	return result, nil
}

func generateRecommendations(result *StrategySolveResult) []string {
	recommendations := []string{}
	if result.Best == nil {
		return recommendations
	}

	best := result.Best
	recommendations = append(recommendations,
		fmt.Sprintf("Smallest Budget: %s needs %s a month", best.Request.Request.Strategy, money.FormatCurrency(best.Budget)))

	for _, r := range result.Results {
		if r.Request.Request.Strategy == best.Request.Request.Strategy {
			continue
		}
		diff := r.Budget.Sub(best.Budget)
		if diff.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("%s needs %s more a month", r.Request.Request.Strategy, money.FormatCurrency(diff)))
		}
	}

	extra := best.Budget.Sub(best.MinimumBudget)
	if extra.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Pay %s above the minimums to meet the goal", money.FormatCurrency(extra)))
	}

	return recommendations
}
