package ledger

import (
	"time"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// UtilizationRating buckets a utilization percentage.
type UtilizationRating string

const (
	UtilizationLow    UtilizationRating = "low"
	UtilizationMedium UtilizationRating = "medium"
	UtilizationHigh   UtilizationRating = "high"
)

var (
	lowUtilization    = decimal.NewFromInt(30)
	mediumUtilization = decimal.NewFromInt(75)
)

// RateUtilization returns low below 30%, medium below 75% and high otherwise.
func RateUtilization(pct decimal.Decimal) UtilizationRating {
	switch {
	case pct.LessThan(lowUtilization):
		return UtilizationLow
	case pct.LessThan(mediumUtilization):
		return UtilizationMedium
	default:
		return UtilizationHigh
	}
}

// CardSummary aggregates the credit-card accounts of a ledger.
type CardSummary struct {
	Cards           int               `json:"cards"`
	TotalOwed       decimal.Decimal   `json:"total_owed"`
	TotalLimit      decimal.Decimal   `json:"total_limit"`
	AvailableCredit decimal.Decimal   `json:"available_credit"`
	Utilization     decimal.Decimal   `json:"utilization"`
	Rating          UtilizationRating `json:"rating"`
}

// SummarizeCards totals owed balances and limits across credit cards.
// Utilization is owed over limit in percent, zero when there is no limit.
func SummarizeCards(accounts []domain.Account) CardSummary {
	summary := CardSummary{
		TotalOwed:       decimal.Zero,
		TotalLimit:      decimal.Zero,
		AvailableCredit: decimal.Zero,
		Utilization:     decimal.Zero,
	}

	for _, a := range accounts {
		if !a.IsCreditCard() {
			continue
		}
		summary.Cards++
		summary.TotalOwed = summary.TotalOwed.Add(a.CurrentBalance)
		summary.TotalLimit = summary.TotalLimit.Add(a.CreditLimit)
	}

	summary.AvailableCredit = money.NonNegative(summary.TotalLimit.Sub(summary.TotalOwed))
	if summary.TotalLimit.IsPositive() {
		summary.Utilization = summary.TotalOwed.Div(summary.TotalLimit).Mul(money.Hundred).Round(2)
	}
	summary.Rating = RateUtilization(summary.Utilization)
	return summary
}

// DebtAccounts converts credit-card accounts with a positive balance into
// simulator input.
func DebtAccounts(accounts []domain.Account) []domain.DebtAccount {
	debts := []domain.DebtAccount{}
	for _, a := range accounts {
		if !a.IsCreditCard() || !a.CurrentBalance.IsPositive() {
			continue
		}
		debts = append(debts, domain.NewDebtAccount(a.ID, a.Name, a.CurrentBalance, money.NonNegative(a.APR)))
	}
	return debts
}

// PaymentStats describes how card payments compare to statement amounts.
type PaymentStats struct {
	Payments       int             `json:"payments"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalStatement decimal.Decimal `json:"total_statement"`
	// AveragePaymentRate is total paid over the matched statement total, in
	// percent.
	AveragePaymentRate decimal.Decimal `json:"average_payment_rate"`
	MinimumOnly        int             `json:"minimum_only"`
	FullPayments       int             `json:"full_payments"`
}

const (
	// StatsWindowMonths is how far back payments are analyzed.
	StatsWindowMonths = 6
	// StatementMatchDays is how long after a payment a bill may fall due and
	// still be matched to it.
	StatementMatchDays = 30
)

var (
	assumedMinimumShare = decimal.RequireFromString("0.02")
	minimumTolerance    = decimal.RequireFromString("0.10")
	fullTolerance       = decimal.RequireFromString("0.05")
)

// ComputePaymentStats analyzes payments made to credit cards during the last
// six months before now. A payment is a deposit recorded on a card or any
// transaction whose PaymentToAccountID names a card. Each payment is matched
// to the first bill on the same card falling due within 30 days after it; the
// bill amount stands for the statement balance. A payment within 10% of 2% of
// the statement counts as minimum-only, one within 5% of the statement as a
// full payment.
func ComputePaymentStats(accounts []domain.Account, txs []domain.Transaction, bills []domain.Bill, now time.Time) PaymentStats {
	stats := PaymentStats{
		TotalPaid:          decimal.Zero,
		TotalStatement:     decimal.Zero,
		AveragePaymentRate: decimal.Zero,
	}

	cards := map[string]bool{}
	for _, a := range accounts {
		if a.IsCreditCard() {
			cards[a.ID] = true
		}
	}
	if len(cards) == 0 {
		return stats
	}

	since := now.AddDate(0, -StatsWindowMonths, 0)
	for _, tx := range txs {
		if tx.Date.Before(since) || tx.Date.After(now) {
			continue
		}
		card, ok := paidCard(tx, cards)
		if !ok {
			continue
		}

		stats.Payments++
		stats.TotalPaid = stats.TotalPaid.Add(tx.Amount)

		bill, ok := matchStatement(card, tx.Date, bills)
		if !ok || !bill.Amount.IsPositive() {
			continue
		}
		stats.TotalStatement = stats.TotalStatement.Add(bill.Amount)

		minimum := bill.Amount.Mul(assumedMinimumShare)
		if tx.Amount.Sub(minimum).Abs().Div(minimum).LessThan(minimumTolerance) {
			stats.MinimumOnly++
		}
		if tx.Amount.Sub(bill.Amount).Abs().Div(bill.Amount).LessThan(fullTolerance) {
			stats.FullPayments++
		}
	}

	if stats.TotalStatement.IsPositive() {
		stats.AveragePaymentRate = stats.TotalPaid.Div(stats.TotalStatement).Mul(money.Hundred).Round(2)
	}
	return stats
}

func paidCard(tx domain.Transaction, cards map[string]bool) (string, bool) {
	if tx.PaymentToAccountID != "" && cards[tx.PaymentToAccountID] {
		return tx.PaymentToAccountID, true
	}
	if tx.Type == domain.Deposit && cards[tx.AccountID] {
		return tx.AccountID, true
	}
	return "", false
}

func matchStatement(card string, paidAt time.Time, bills []domain.Bill) (domain.Bill, bool) {
	deadline := paidAt.AddDate(0, 0, StatementMatchDays)
	for _, b := range bills {
		if b.AccountID != card {
			continue
		}
		if !b.DueDate.Before(paidAt) && !b.DueDate.After(deadline) {
			return b, true
		}
	}
	return domain.Bill{}, false
}
