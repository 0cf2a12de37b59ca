package calculation

import (
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// MinimumPayment returns the realistic minimum payment on a card balance using
// the default issuer rule: the higher of $25 or 1% of the balance plus the
// month's interest, never more than balance plus interest.
func MinimumPayment(balance, apr decimal.Decimal) decimal.Decimal {
	return MinimumPaymentWithRule(balance, apr, domain.DefaultMinimumPaymentRule())
}

// MinimumPaymentWithRule is MinimumPayment with an explicit rule. Negative
// APR, percent or fixed values are treated as zero.
func MinimumPaymentWithRule(balance, apr decimal.Decimal, rule domain.MinimumPaymentRule) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}

	interest := balance.Mul(money.MonthlyRate(apr))
	percentBased := balance.Mul(money.NonNegative(rule.Percent).Div(money.Hundred)).Add(interest)
	minimum := decimal.Max(money.NonNegative(rule.Fixed), percentBased)

	// Cannot require more than is owed including this month's interest
	return decimal.Min(minimum, balance.Add(interest))
}

// TotalMinimumPayments sums the minimum payment of every account evaluated
// against its starting balance.
func TotalMinimumPayments(accounts []domain.DebtAccount, rule domain.MinimumPaymentRule) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(MinimumPaymentWithRule(a.InitialBalance, a.APR, rule))
	}
	return total
}
