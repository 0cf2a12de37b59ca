package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/storage"
	"github.com/shopspring/decimal"
)

const accountColumns = "id, name, type, current_balance, credit_limit, apr, created_at, updated_at"

// CreateAccount persists a new account and records its opening balance.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.Name == "" {
		return fmt.Errorf("account name is required")
	}
	if _, err := domain.ParseAccountType(string(account.Type)); err != nil {
		return err
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := s.now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.rebind(
		"INSERT INTO accounts ("+accountColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
		account.ID, account.Name, string(account.Type),
		account.CurrentBalance.String(), account.CreditLimit.String(), account.APR.String(),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	entry := domain.BalanceEntry{AccountID: account.ID, Balance: account.CurrentBalance, Date: now}
	if err := s.insertHistory(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getAccount(ctx, s.db, id)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) getAccount(ctx context.Context, q rowQuerier, id string) (*domain.Account, error) {
	row := q.QueryRowContext(ctx, s.rebind("SELECT "+accountColumns+" FROM accounts WHERE id = ?"), id)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account, its transactions and its balance
// history. References from other accounts' payments and from bills are
// cleared.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		"DELETE FROM balance_history WHERE account_id = ?",
		"DELETE FROM transactions WHERE account_id = ?",
		"UPDATE transactions SET payment_to_account_id = NULL WHERE payment_to_account_id = ?",
		"UPDATE bills SET account_id = NULL WHERE account_id = ?",
		"UPDATE income_sources SET account_id = NULL WHERE account_id = ?",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, s.rebind(stmt), id); err != nil {
			return fmt.Errorf("failed to delete account data: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM accounts WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		a                    domain.Account
		accountType          string
		balance, limit, apr  string
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.Name, &accountType, &balance, &limit, &apr, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(accountType)

	var err error
	if a.CurrentBalance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("invalid balance for account %s: %w", a.ID, err)
	}
	if a.CreditLimit, err = decimal.NewFromString(limit); err != nil {
		return nil, fmt.Errorf("invalid credit limit for account %s: %w", a.ID, err)
	}
	if a.APR, err = decimal.NewFromString(apr); err != nil {
		return nil, fmt.Errorf("invalid APR for account %s: %w", a.ID, err)
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) updateBalance(ctx context.Context, tx *sql.Tx, account *domain.Account) error {
	_, err := tx.ExecContext(ctx, s.rebind(
		"UPDATE accounts SET current_balance = ?, updated_at = ? WHERE id = ?"),
		account.CurrentBalance.String(), formatTime(account.UpdatedAt), account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", account.ID, err)
	}
	return nil
}

func (s *Store) insertHistory(ctx context.Context, tx *sql.Tx, entry domain.BalanceEntry) error {
	var seq int64
	err := tx.QueryRowContext(ctx, s.rebind(
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM balance_history WHERE account_id = ?"),
		entry.AccountID,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to sequence balance history: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(
		"INSERT INTO balance_history (id, account_id, seq, balance, date) VALUES (?, ?, ?, ?, ?)"),
		uuid.New().String(), entry.AccountID, seq, entry.Balance.String(), formatTime(entry.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}
	return nil
}

// BalanceHistory returns the recorded balances of an account, oldest first.
func (s *Store) BalanceHistory(ctx context.Context, accountID string) ([]domain.BalanceEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT account_id, balance, date FROM balance_history WHERE account_id = ? ORDER BY seq"),
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history: %w", err)
	}
	defer rows.Close()

	history := []domain.BalanceEntry{}
	for rows.Next() {
		var (
			entry         domain.BalanceEntry
			balance, date string
		)
		if err := rows.Scan(&entry.AccountID, &balance, &date); err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		if entry.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("invalid stored balance %q: %w", balance, err)
		}
		if entry.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}
	return history, nil
}
