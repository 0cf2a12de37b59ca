package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards() domain.SimulationRequest {
	return domain.SimulationRequest{
		Accounts: []domain.DebtAccount{
			domain.NewDebtAccount("a", "Card A", decimal.NewFromInt(3000), decimal.NewFromInt(24)),
			domain.NewDebtAccount("b", "Card B", decimal.NewFromInt(1500), decimal.NewFromInt(15)),
		},
		Strategy: domain.Avalanche,
	}
}

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewSimulator(calculation.DefaultSimulatorOptions()))
}

func simulate(t *testing.T, req domain.SimulationRequest, budget decimal.Decimal) (*domain.SimulationResult, error) {
	t.Helper()
	req.MonthlyBudget = budget
	return calculation.NewSimulator(calculation.DefaultSimulatorOptions()).Run(context.Background(), req)
}

func TestNewSolver(t *testing.T) {
	runner := calculation.NewSimulator(calculation.DefaultSimulatorOptions())
	options := DefaultSolverOptions()

	solver := NewSolver(runner, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.Runner != runner {
		t.Error("Expected Runner to match input")
	}
	if solver.Options.MaxIterations != 64 {
		t.Errorf("Expected 64 iterations, got %d", solver.Options.MaxIterations)
	}
}

func TestSolver_Solve_TargetMonths(t *testing.T) {
	solver := newSolver()

	result, err := solver.Solve(context.Background(), SolverRequest{
		Request:      cards(),
		Goal:         GoalTargetMonths,
		TargetMonths: 24,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.LessOrEqual(t, int(result.TotalMonths), 24)
	assert.True(t, result.Budget.GreaterThanOrEqual(result.MinimumBudget))

	// One cent less misses the target or falls below the minimums
	sim, err := simulate(t, cards(), result.Budget.Sub(decimal.New(1, -2)))
	if err == nil {
		assert.Greater(t, int(sim.TotalMonths), 24, "budget %s is not minimal", result.Budget)
	} else {
		assert.ErrorIs(t, err, calculation.ErrBudgetBelowMinimums)
	}
}

func TestSolver_Solve_MinimumsAlreadyEnough(t *testing.T) {
	solver := newSolver()

	result, err := solver.Solve(context.Background(), SolverRequest{
		Request:      cards(),
		TargetMonths: 700,
	})
	require.NoError(t, err)

	assert.True(t, result.Budget.Equal(result.MinimumBudget))
	assert.Equal(t, 1, result.Iterations)
}

func TestSolver_Solve_MaxInterest(t *testing.T) {
	solver := newSolver()

	result, err := solver.Solve(context.Background(), SolverRequest{
		Request:     cards(),
		Goal:        GoalMaxInterest,
		MaxInterest: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, result.TotalInterest.LessThanOrEqual(decimal.NewFromInt(500)))

	sim, err := simulate(t, cards(), result.Budget.Sub(decimal.New(1, -2)))
	require.NoError(t, err)
	assert.True(t, sim.TotalInterest.GreaterThan(decimal.NewFromInt(500)))
}

func TestSolver_Solve_Unreachable(t *testing.T) {
	solver := newSolver()

	// Only the target receives surplus, so two cards need at least two months
	_, err := solver.Solve(context.Background(), SolverRequest{
		Request:      cards(),
		TargetMonths: 1,
	})
	require.Error(t, err)

	var solverErr *SolverError
	require.True(t, errors.As(err, &solverErr))
	assert.Equal(t, "solve", solverErr.Operation)
	assert.True(t, strings.Contains(err.Error(), "goal is not reachable"))
}

func TestSolver_Solve_InvalidRequest(t *testing.T) {
	solver := newSolver()

	tests := []struct {
		name string
		req  SolverRequest
	}{
		{"zero target", SolverRequest{Request: cards(), TargetMonths: 0}},
		{"negative interest cap", SolverRequest{Request: cards(), Goal: GoalMaxInterest, MaxInterest: decimal.NewFromInt(-1)}},
		{"unknown goal", SolverRequest{Request: cards(), Goal: "fastest"}},
		{"no debt", SolverRequest{Request: domain.SimulationRequest{}, TargetMonths: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Solve(context.Background(), tt.req)
			var solverErr *SolverError
			assert.True(t, errors.As(err, &solverErr), "expected SolverError, got %v", err)
		})
	}
}

func TestSolver_Solve_Cancelled(t *testing.T) {
	solver := newSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, SolverRequest{Request: cards(), TargetMonths: 24})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_SolveStrategies(t *testing.T) {
	solver := newSolver()

	result, err := solver.SolveStrategies(context.Background(), SolverRequest{
		Request:      cards(),
		TargetMonths: 18,
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	require.NotNil(t, result.Best)
	for _, r := range result.Results {
		assert.True(t, result.Best.Budget.LessThanOrEqual(r.Budget))
	}
	assert.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "Smallest Budget")
}

func TestTableFormatter_Format(t *testing.T) {
	solver := newSolver()
	result, err := solver.Solve(context.Background(), SolverRequest{Request: cards(), TargetMonths: 24})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	for _, want := range []string{"MINIMUM BUDGET SOLVER", "debt-free within 24 months", "✓ Converged", "Monthly Budget:"} {
		assert.Contains(t, out, want)
	}

	js, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"success":true`)
}
