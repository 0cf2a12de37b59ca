package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveGoal defines what outcome the budget must achieve
type SolveGoal string

const (
	GoalTargetMonths SolveGoal = "target_months" // Debt-free within TargetMonths
	GoalMaxInterest  SolveGoal = "max_interest"  // Total interest no higher than MaxInterest
)

// SolverRequest defines the parameters for a minimum budget search
type SolverRequest struct {
	Request       domain.SimulationRequest `json:"request"`
	Goal          SolveGoal                `json:"goal"`
	TargetMonths  int                      `json:"target_months,omitempty"`
	MaxInterest   decimal.Decimal          `json:"max_interest,omitempty"`
	MaxIterations int                      `json:"max_iterations,omitempty"`
}

// Validate checks that the goal parameters are usable
func (r *SolverRequest) Validate() error {
	switch r.Goal {
	case GoalTargetMonths, "":
		if r.TargetMonths <= 0 {
			return &SolverError{
				Operation: "validate_request",
				Message:   "target months must be positive",
			}
		}
	case GoalMaxInterest:
		if r.MaxInterest.IsNegative() {
			return &SolverError{
				Operation: "validate_request",
				Message:   "max interest cannot be negative",
			}
		}
	default:
		return &SolverError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported goal: %s", r.Goal),
		}
	}
	return nil
}

// SolverResult contains the smallest budget meeting the goal
type SolverResult struct {
	Request         SolverRequest `json:"request"`
	Success         bool          `json:"success"`
	Iterations      int           `json:"iterations"`
	ConvergenceInfo string        `json:"convergence_info"`

	Budget        decimal.Decimal `json:"budget"`
	MinimumBudget decimal.Decimal `json:"minimum_budget"`

	// Results at the solved budget
	Simulation    *domain.SimulationResult `json:"simulation"`
	TotalMonths   domain.PayoffMonths      `json:"total_months"`
	TotalInterest decimal.Decimal          `json:"total_interest"`
}

// StrategySolveResult contains the solved budget for several strategies
type StrategySolveResult struct {
	Results         []SolverResult `json:"results"`
	Best            *SolverResult  `json:"best"`
	Recommendations []string       `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int                       // Binary search iteration cap
	MinimumRule   domain.MinimumPaymentRule // Lower bound of the search
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
		MinimumRule:   domain.DefaultMinimumPaymentRule(),
	}
}

// SolverError represents errors from the budget solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
