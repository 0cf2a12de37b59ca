package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidBudget reports a missing, zero, negative or non-finite budget.
	ErrInvalidBudget = errors.New("invalid payment amount")
	// ErrBudgetBelowMinimums reports a budget that cannot cover the starting
	// minimum payments of every account.
	ErrBudgetBelowMinimums = errors.New("payment below required minimums")
)

// ErrorKind classifies pre-simulation validation failures.
type ErrorKind string

const (
	KindInvalidBudget       ErrorKind = "invalid_budget"
	KindBudgetBelowMinimums ErrorKind = "budget_below_minimums"
)

// SimulationError is returned when a request is rejected before simulating.
// Message is meant to be shown to the user verbatim.
type SimulationError struct {
	Kind    ErrorKind
	Message string
	// MinimumTotal is the required budget for KindBudgetBelowMinimums.
	MinimumTotal decimal.Decimal
}

func (e *SimulationError) Error() string {
	return e.Message
}

func (e *SimulationError) Unwrap() error {
	switch e.Kind {
	case KindInvalidBudget:
		return ErrInvalidBudget
	case KindBudgetBelowMinimums:
		return ErrBudgetBelowMinimums
	default:
		return nil
	}
}

func invalidBudgetError() *SimulationError {
	return &SimulationError{
		Kind:    KindInvalidBudget,
		Message: "Please enter a valid monthly payment amount.",
	}
}

func belowMinimumsError(minimumTotal decimal.Decimal) *SimulationError {
	return &SimulationError{
		Kind: KindBudgetBelowMinimums,
		Message: fmt.Sprintf("Your monthly payment must be at least %s to cover all minimum payments.",
			money.FormatCurrency(minimumTotal)),
		MinimumTotal: minimumTotal,
	}
}

// BudgetFromFloat validates a budget coming from a float source such as a
// command line flag.
func BudgetFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero, invalidBudgetError()
	}
	return decimal.NewFromFloat(f), nil
}
