package calculation

import (
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// MaxEstimateMonths bounds the single-card estimate (50 years).
const MaxEstimateMonths = 600

// PayoffEstimate is the result of paying one card with a fixed payment.
// When Feasible is false Months is PayoffNever.
type PayoffEstimate struct {
	Months domain.PayoffMonths `json:"months"`
	// TotalInterest is unbounded for an infeasible estimate. A decimal cannot
	// hold infinity, so it is then a zero placeholder; check Feasible first.
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Feasible      bool                `json:"feasible"`
}

func infeasibleEstimate() PayoffEstimate {
	return PayoffEstimate{Months: domain.PayoffNever, TotalInterest: decimal.Zero}
}

// EstimatePayoff computes how long one card takes to pay off when the same
// payment is applied every month, independent of any other card.
func EstimatePayoff(balance, apr, payment decimal.Decimal) PayoffEstimate {
	if !balance.IsPositive() {
		return PayoffEstimate{Months: 0, TotalInterest: decimal.Zero, Feasible: true}
	}
	if !payment.IsPositive() {
		return infeasibleEstimate()
	}

	rate := money.MonthlyRate(apr)
	// A payment that cannot beat the first month's interest never catches up
	if rate.IsPositive() && payment.LessThanOrEqual(balance.Mul(rate)) {
		return infeasibleEstimate()
	}

	current := balance
	totalInterest := decimal.Zero
	months := 0
	for current.GreaterThan(money.Epsilon) && months < MaxEstimateMonths {
		months++

		interest := money.RoundCents(current.Mul(rate))
		totalInterest = totalInterest.Add(interest)
		current = current.Add(interest)

		applied := decimal.Min(payment, current)
		current = current.Sub(applied)
		if current.IsNegative() {
			current = decimal.Zero
		}
	}

	if current.GreaterThan(money.Epsilon) {
		return infeasibleEstimate()
	}

	return PayoffEstimate{
		Months:        domain.PayoffMonths(months),
		TotalInterest: totalInterest,
		Feasible:      true,
	}
}
