package ledger

import (
	"time"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// CashFlow is the monthly-equivalent view of recurring income and bills.
type CashFlow struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	MonthlyBills  decimal.Decimal `json:"monthly_bills"`
	// Surplus is income minus bills and may be negative. It is the natural
	// ceiling for a payoff budget.
	Surplus decimal.Decimal `json:"surplus"`
}

// MonthlyCashFlow converts recurring income and bills to monthly amounts.
// One-off items do not recur and are ignored.
func MonthlyCashFlow(incomes []domain.IncomeSource, bills []domain.Bill) CashFlow {
	income := decimal.Zero
	for _, in := range incomes {
		income = income.Add(in.Amount.Mul(in.Frequency.MonthlyFactor()))
	}
	outgoing := decimal.Zero
	for _, b := range bills {
		outgoing = outgoing.Add(b.Amount.Mul(b.Frequency.MonthlyFactor()))
	}

	income = money.RoundCents(income)
	outgoing = money.RoundCents(outgoing)
	return CashFlow{
		MonthlyIncome: income,
		MonthlyBills:  outgoing,
		Surplus:       income.Sub(outgoing),
	}
}

// UpcomingBills returns unpaid bills falling due within days of now, in the
// order given.
func UpcomingBills(bills []domain.Bill, now time.Time, days int) []domain.Bill {
	deadline := now.AddDate(0, 0, days)
	upcoming := []domain.Bill{}
	for _, b := range bills {
		if b.Paid || b.DueDate.Before(now) || b.DueDate.After(deadline) {
			continue
		}
		upcoming = append(upcoming, b)
	}
	return upcoming
}
