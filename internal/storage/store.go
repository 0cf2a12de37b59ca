// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/rgehrsitz/dpgo/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the ledger storage operations.
// Implementations keep account balances consistent with the transactions
// recorded against them.
type Store interface {
	// CreateAccount persists a new account. The ID is generated when empty.
	CreateAccount(ctx context.Context, account *domain.Account) error

	// GetAccount retrieves an account by ID. It returns an error wrapping
	// ErrNotFound when the account does not exist.
	GetAccount(ctx context.Context, id string) (*domain.Account, error)

	// ListAccounts returns all accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeleteAccount removes an account together with its transactions and
	// balance history.
	DeleteAccount(ctx context.Context, id string) error

	// CreateTransaction records a transaction and applies its balance
	// effects in the same database transaction.
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error

	// DeleteTransaction removes a transaction and reverses its balance
	// effects.
	DeleteTransaction(ctx context.Context, id string) error

	// ListTransactions returns transactions newest first. An empty accountID
	// lists every account.
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// BalanceHistory returns the recorded balances of an account, oldest first.
	BalanceHistory(ctx context.Context, accountID string) ([]domain.BalanceEntry, error)

	CreateBill(ctx context.Context, bill *domain.Bill) error
	ListBills(ctx context.Context) ([]domain.Bill, error)
	MarkBillPaid(ctx context.Context, id string, paid bool) error

	CreateIncome(ctx context.Context, income *domain.IncomeSource) error
	ListIncome(ctx context.Context) ([]domain.IncomeSource, error)

	// Close releases any resources held by the store.
	Close() error
}
