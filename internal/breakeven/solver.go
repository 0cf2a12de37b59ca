package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// Solver searches for the smallest monthly budget that meets a payoff goal
type Solver struct {
	Runner  calculation.Runner
	Options SolverOptions
}

// NewSolver creates a new budget solver
func NewSolver(runner calculation.Runner, options SolverOptions) *Solver {
	return &Solver{
		Runner:  runner,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(runner calculation.Runner) *Solver {
	return NewSolver(runner, DefaultSolverOptions())
}

// Solve binary-searches whole cents between the sum of starting minimums
// and the total owed plus one month of interest. The returned budget meets
// the goal and one cent less does not.
func (s *Solver) Solve(ctx context.Context, req SolverRequest) (*SolverResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Goal == "" {
		req.Goal = GoalTargetMonths
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	accounts := req.Request.Accounts
	minimum := money.RoundCents(calculation.TotalMinimumPayments(accounts, s.Options.MinimumRule))
	if !minimum.IsPositive() {
		return nil, &SolverError{
			Operation: "solve",
			Message:   "no account carries a balance",
		}
	}

	lo := money.Cents(minimum)
	hi := money.Cents(upperBound(accounts))
	if hi < lo {
		hi = lo
	}

	iterations := 0
	eval := func(cents int64) (*domain.SimulationResult, bool, error) {
		iterations++
		return s.evaluate(ctx, req, money.FromCents(cents))
	}

	sim, ok, err := eval(lo)
	if err != nil {
		return nil, err
	}
	if ok {
		return s.result(req, minimum, money.FromCents(lo), sim, iterations, true, "Minimum payments already meet the goal"), nil
	}

	best, ok, err := eval(hi)
	if err != nil {
		return nil, err
	}
	if !ok {
		fastest := domain.PayoffNever
		if best != nil {
			fastest = best.TotalMonths
		}
		return nil, &SolverError{
			Operation: "solve",
			Message: fmt.Sprintf("goal is not reachable: paying %s a month takes %s months",
				money.FormatCurrency(money.FromCents(hi)), fastest),
		}
	}

	// lo always misses the goal, hi always meets it
	for hi-lo > 1 {
		if iterations >= req.MaxIterations {
			return s.result(req, minimum, money.FromCents(hi), best, iterations, false,
				fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)), nil
		}

		mid := lo + (hi-lo)/2
		sim, ok, err := eval(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			hi, best = mid, sim
		} else {
			lo = mid
		}
	}

	return s.result(req, minimum, money.FromCents(hi), best, iterations, true, "Binary search converged to the cent"), nil
}

func (s *Solver) evaluate(ctx context.Context, req SolverRequest, budget decimal.Decimal) (*domain.SimulationResult, bool, error) {
	simReq := req.Request
	simReq.MonthlyBudget = budget

	sim, err := s.Runner.Run(ctx, simReq)
	if err != nil {
		if errors.Is(err, calculation.ErrBudgetBelowMinimums) {
			return nil, false, nil
		}
		return nil, false, &SolverError{
			Operation: "solve",
			Message:   fmt.Sprintf("simulation failed at %s", money.FormatCurrency(budget)),
			Cause:     err,
		}
	}

	return sim, meetsGoal(req, sim), nil
}

func meetsGoal(req SolverRequest, sim *domain.SimulationResult) bool {
	if sim.CeilingReached || !sim.TotalMonths.Known() {
		return false
	}
	switch req.Goal {
	case GoalMaxInterest:
		return sim.TotalInterest.LessThanOrEqual(req.MaxInterest)
	default:
		return int(sim.TotalMonths) <= req.TargetMonths
	}
}

// upperBound is the total owed plus one month of interest, rounded up.
func upperBound(accounts []domain.DebtAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if !a.InitialBalance.IsPositive() {
			continue
		}
		interest := a.InitialBalance.Mul(money.MonthlyRate(a.APR))
		total = total.Add(a.InitialBalance).Add(interest)
	}
	return total.RoundCeil(2)
}

func (s *Solver) result(req SolverRequest, minimum, budget decimal.Decimal, sim *domain.SimulationResult, iterations int, success bool, info string) *SolverResult {
	res := &SolverResult{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Budget:          budget,
		MinimumBudget:   minimum,
		Simulation:      sim,
	}
	if sim != nil {
		res.TotalMonths = sim.TotalMonths
		res.TotalInterest = sim.TotalInterest
	}
	return res
}
