package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/ledger"
	"github.com/rgehrsitz/dpgo/internal/storage"
	"github.com/shopspring/decimal"
)

const transactionColumns = "id, account_id, type, amount, date, description, category, bill_id, payment_to_account_id, is_minimum_payment"

// CreateTransaction records a transaction and applies its balance effects
// to the source account and, for payments, the target account.
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if t.Date.IsZero() {
		t.Date = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	effects, accounts, err := s.effects(ctx, tx, *t)
	if err != nil {
		return err
	}
	if err := s.applyEffects(ctx, tx, accounts, effects); err != nil {
		return err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err = tx.ExecContext(ctx, s.rebind(
		"INSERT INTO transactions ("+transactionColumns+", created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		t.ID, t.AccountID, string(t.Type), t.Amount.String(), formatTime(t.Date),
		nullString(t.Description), nullString(t.Category), nullString(t.BillID), nullString(t.PaymentToAccountID),
		boolInt(t.IsMinimumPayment), formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction and reverses its balance effects.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, s.rebind("SELECT "+transactionColumns+" FROM transactions WHERE id = ?"), id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	effects, accounts, err := s.effects(ctx, tx, *t)
	if err != nil {
		return err
	}
	if err := s.applyEffects(ctx, tx, accounts, ledger.Reverse(effects)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM transactions WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// effects loads the accounts a transaction touches and computes its balance
// changes.
func (s *Store) effects(ctx context.Context, tx *sql.Tx, t domain.Transaction) ([]ledger.Effect, map[string]*domain.Account, error) {
	source, err := s.getAccount(ctx, tx, t.AccountID)
	if err != nil {
		return nil, nil, err
	}
	accounts := map[string]*domain.Account{source.ID: source}

	var target *domain.Account
	if t.PaymentToAccountID != "" {
		target, err = s.getAccount(ctx, tx, t.PaymentToAccountID)
		if err != nil {
			return nil, nil, err
		}
		accounts[target.ID] = target
	}

	effects, err := ledger.Effects(t, *source, target)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid transaction: %w", err)
	}
	return effects, accounts, nil
}

func (s *Store) applyEffects(ctx context.Context, tx *sql.Tx, accounts map[string]*domain.Account, effects []ledger.Effect) error {
	history, err := ledger.Apply(accounts, effects, s.now().UTC())
	if err != nil {
		return err
	}
	for _, entry := range history {
		if err := s.updateBalance(ctx, tx, accounts[entry.AccountID]); err != nil {
			return err
		}
		if err := s.insertHistory(ctx, tx, entry); err != nil {
			return err
		}
	}
	return nil
}

// ListTransactions returns transactions newest first.
func (s *Store) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions"
	args := []any{}
	if accountID != "" {
		query += " WHERE account_id = ? OR payment_to_account_id = ?"
		args = append(args, accountID, accountID)
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		t                                  domain.Transaction
		txType, amount, date               string
		description, category, bill, payTo sql.NullString
		minimum                            int
	)
	err := row.Scan(&t.ID, &t.AccountID, &txType, &amount, &date,
		&description, &category, &bill, &payTo, &minimum)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TransactionType(txType)
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount for transaction %s: %w", t.ID, err)
	}
	if t.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Category = category.String
	t.BillID = bill.String
	t.PaymentToAccountID = payTo.String
	t.IsMinimumPayment = minimum != 0
	return &t, nil
}
