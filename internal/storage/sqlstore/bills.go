package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/storage"
	"github.com/shopspring/decimal"
)

// CreateBill persists a new bill.
func (s *Store) CreateBill(ctx context.Context, bill *domain.Bill) error {
	if bill.Name == "" {
		return fmt.Errorf("bill name is required")
	}
	if !bill.Amount.IsPositive() {
		return fmt.Errorf("bill amount must be positive")
	}
	if _, err := domain.ParseFrequency(string(bill.Frequency)); err != nil {
		return err
	}
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO bills (id, name, amount, due_date, frequency, category, account_id, paid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		bill.ID, bill.Name, bill.Amount.String(), formatTime(bill.DueDate), string(bill.Frequency),
		nullString(bill.Category), nullString(bill.AccountID), boolInt(bill.Paid),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBills returns all bills ordered by due date.
func (s *Store) ListBills(ctx context.Context) ([]domain.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, due_date, frequency, category, account_id, paid FROM bills ORDER BY due_date, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		var (
			b                 domain.Bill
			amount, due, freq string
			category, account sql.NullString
			paid              int
		)
		if err := rows.Scan(&b.ID, &b.Name, &amount, &due, &freq, &category, &account, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount for bill %s: %w", b.ID, err)
		}
		if b.DueDate, err = parseTime(due); err != nil {
			return nil, err
		}
		b.Frequency = domain.Frequency(freq)
		b.Category = category.String
		b.AccountID = account.String
		b.Paid = paid != 0
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// MarkBillPaid sets the paid flag of a bill.
func (s *Store) MarkBillPaid(ctx context.Context, id string, paid bool) error {
	res, err := s.db.ExecContext(ctx, s.rebind("UPDATE bills SET paid = ? WHERE id = ?"), boolInt(paid), id)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bill %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// CreateIncome persists a new income source.
func (s *Store) CreateIncome(ctx context.Context, income *domain.IncomeSource) error {
	if income.Name == "" {
		return fmt.Errorf("income name is required")
	}
	if !income.Amount.IsPositive() {
		return fmt.Errorf("income amount must be positive")
	}
	if _, err := domain.ParseFrequency(string(income.Frequency)); err != nil {
		return err
	}
	if income.ID == "" {
		income.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO income_sources (id, name, amount, frequency, next_date, account_id)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		income.ID, income.Name, income.Amount.String(), string(income.Frequency),
		formatTime(income.NextDate), nullString(income.AccountID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert income source: %w", err)
	}
	return nil
}

// ListIncome returns all income sources ordered by next date.
func (s *Store) ListIncome(ctx context.Context) ([]domain.IncomeSource, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, frequency, next_date, account_id FROM income_sources ORDER BY next_date, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list income sources: %w", err)
	}
	defer rows.Close()

	incomes := []domain.IncomeSource{}
	for rows.Next() {
		var (
			in                 domain.IncomeSource
			amount, freq, next string
			account            sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.Name, &amount, &freq, &next, &account); err != nil {
			return nil, fmt.Errorf("failed to scan income source: %w", err)
		}
		if in.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount for income %s: %w", in.ID, err)
		}
		if in.NextDate, err = parseTime(next); err != nil {
			return nil, err
		}
		in.Frequency = domain.Frequency(freq)
		in.AccountID = account.String
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income sources: %w", err)
	}
	return incomes, nil
}
