package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
)

// CompareEngine orchestrates strategy comparison
type CompareEngine struct {
	Runner            calculation.Runner
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(runner calculation.Runner) *CompareEngine {
	return &CompareEngine{
		Runner:            runner,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseStrategy domain.Strategy   // Strategy the others are measured against
	Alternatives []domain.Strategy // Defaults to the other built-in strategies
	PlanPath     string
}

// DefaultAlternatives returns the built-in strategies other than base. The
// custom strategy is included only when a custom order is supplied.
func DefaultAlternatives(base domain.Strategy, customOrder []string) []domain.Strategy {
	candidates := []domain.Strategy{domain.Avalanche, domain.Snowball}
	if len(customOrder) > 0 {
		candidates = append(candidates, domain.Custom)
	}

	alts := make([]domain.Strategy, 0, len(candidates))
	for _, s := range candidates {
		if s != base {
			alts = append(alts, s)
		}
	}
	return alts
}

// Compare runs the request under the base strategy and every alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	req domain.SimulationRequest,
	options CompareOptions,
) (*ComparisonSet, error) {

	base := options.BaseStrategy
	if base == "" {
		base = req.Strategy
	}
	if base == "" {
		base = domain.Avalanche
	}

	alternatives := options.Alternatives
	if len(alternatives) == 0 {
		alternatives = DefaultAlternatives(base, req.CustomOrder)
	}

	baseResult, err := ce.runStrategy(ctx, req, base)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate base strategy %s: %w", base, err)
	}

	results := []ComparisonResult{}
	for _, strategy := range alternatives {
		if strategy == base {
			continue
		}

		altResult, err := ce.runStrategy(ctx, req, strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate strategy %s: %w", strategy, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseStrategy:       base,
		MonthlyBudget:      baseResult.Result.MonthlyBudget,
		TotalDebt:          baseResult.Result.TotalDebt(),
		BaseResult:         &baseResult,
		AlternativeResults: results,
		PlanPath:           options.PlanPath,
	}

	summarize(compSet)
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runStrategy(ctx context.Context, req domain.SimulationRequest, strategy domain.Strategy) (ComparisonResult, error) {
	req.Strategy = strategy
	result, err := ce.Runner.Run(ctx, req)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(result), nil
}
