// Package sequencing decides the order in which debts receive surplus payment.
package sequencing

import (
	"sort"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// OrderingStrategy ranks active debts. Less reports whether a should receive
// surplus payment before b; it looks at current balances, so the ranking can
// change from month to month.
type OrderingStrategy interface {
	Name() string
	Less(a, b *domain.DebtAccount) bool
}

// Sort orders accounts by strategy. Accounts that are already paid off go to
// the end. Fully tied accounts keep their input order.
func Sort(accounts []*domain.DebtAccount, strategy OrderingStrategy) {
	SortWithin(accounts, strategy, money.Epsilon)
}

// SortWithin is Sort with balances at or below eps counted as paid off.
func SortWithin(accounts []*domain.DebtAccount, strategy OrderingStrategy, eps decimal.Decimal) {
	done := func(a *domain.DebtAccount) bool {
		return a.CurrentBalance.Abs().LessThanOrEqual(eps)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		iDone := done(accounts[i])
		jDone := done(accounts[j])
		if iDone != jDone {
			return jDone
		}
		if iDone {
			return false
		}
		return strategy.Less(accounts[i], accounts[j])
	})
}

// Rank assigns the 1-based PaymentOrder of every account with a positive
// starting balance. Accounts without debt are left unranked (0).
func Rank(accounts []*domain.DebtAccount, strategy OrderingStrategy) {
	ranked := make([]*domain.DebtAccount, 0, len(accounts))
	for _, a := range accounts {
		a.PaymentOrder = 0
		if a.InitialBalance.IsPositive() {
			ranked = append(ranked, a)
		}
	}
	Sort(ranked, strategy)
	for i, a := range ranked {
		a.PaymentOrder = i + 1
	}
}
