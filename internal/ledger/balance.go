// Package ledger derives running balances and credit-card statistics from
// ledger records. It holds no storage of its own; storage.Store persists the
// effects computed here.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for zero, negative or missing amounts.
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	// ErrUnknownAccount is returned when a transaction names an account that
	// was not supplied.
	ErrUnknownAccount = errors.New("unknown account")
)

// Effect is a signed change to one account's balance.
type Effect struct {
	AccountID string
	Delta     decimal.Decimal
}

// SignedAmount returns the balance change a transaction of the given type
// causes on an account of the given type. Credit-card balances are money
// owed, so a withdrawal (a charge) raises them and a deposit (a payment)
// lowers them. Transfers leave the source account like withdrawals.
func SignedAmount(accountType domain.AccountType, txType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	outflow := txType == domain.Withdrawal || txType == domain.Transfer
	if accountType == domain.AccountCreditCard {
		outflow = !outflow
	}
	if outflow {
		return amount.Neg()
	}
	return amount
}

// Effects computes the balance changes of tx. source is the account the
// transaction is recorded against; target is the account named by
// PaymentToAccountID and may be nil when there is none. The target receives
// the amount as a deposit, which pays down a credit card.
func Effects(tx domain.Transaction, source domain.Account, target *domain.Account) ([]Effect, error) {
	if !tx.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := domain.ParseTransactionType(string(tx.Type)); err != nil {
		return nil, err
	}
	if source.ID != tx.AccountID {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, tx.AccountID)
	}

	effects := []Effect{{AccountID: source.ID, Delta: SignedAmount(source.Type, tx.Type, tx.Amount)}}

	if tx.PaymentToAccountID != "" {
		if target == nil || target.ID != tx.PaymentToAccountID {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, tx.PaymentToAccountID)
		}
		if target.ID == source.ID {
			return nil, fmt.Errorf("payment target must differ from source account %s", source.ID)
		}
		effects = append(effects, Effect{AccountID: target.ID, Delta: SignedAmount(target.Type, domain.Deposit, tx.Amount)})
	}
	return effects, nil
}

// Reverse negates effects, undoing a transaction.
func Reverse(effects []Effect) []Effect {
	reversed := make([]Effect, len(effects))
	for i, e := range effects {
		reversed[i] = Effect{AccountID: e.AccountID, Delta: e.Delta.Neg()}
	}
	return reversed
}

// Apply adds effects to the accounts in place and returns the balance history
// rows to record.
func Apply(accounts map[string]*domain.Account, effects []Effect, at time.Time) ([]domain.BalanceEntry, error) {
	for _, e := range effects {
		if _, ok := accounts[e.AccountID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, e.AccountID)
		}
	}

	history := make([]domain.BalanceEntry, 0, len(effects))
	for _, e := range effects {
		acct := accounts[e.AccountID]
		acct.CurrentBalance = acct.CurrentBalance.Add(e.Delta)
		acct.UpdatedAt = at
		history = append(history, domain.BalanceEntry{
			AccountID: acct.ID,
			Balance:   acct.CurrentBalance,
			Date:      at,
		})
	}
	return history, nil
}
