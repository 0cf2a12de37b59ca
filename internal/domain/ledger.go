package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies ledger accounts.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit card"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
)

// ValidAccountTypes lists the accepted account types.
var ValidAccountTypes = []AccountType{
	AccountChecking, AccountSavings, AccountCreditCard, AccountCash, AccountInvestment, AccountLoan,
}

// ParseAccountType validates an account type string.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range ValidAccountTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid account type %q", s)
}

// Account is a ledger account. For credit cards CurrentBalance is the amount
// owed.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	APR            decimal.Decimal `json:"apr"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsCreditCard reports whether the account is a revolving credit card.
func (a Account) IsCreditCard() bool { return a.Type == AccountCreditCard }

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Transfer   TransactionType = "transfer"
)

// ParseTransactionType validates a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Deposit, Withdrawal, Transfer:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
}

// TransactionCategories are the categories offered for new transactions.
var TransactionCategories = []string{
	"Income", "Housing", "Utilities", "Food", "Transport", "Entertainment", "Shopping", "Transfer", "Other",
}

// Transaction is a single ledger entry. Amount is always positive; Type
// decides the sign applied to the account. PaymentToAccountID marks a payment
// toward a credit card, which lowers that card's owed balance.
type Transaction struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	Type               TransactionType `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description,omitempty"`
	Category           string          `json:"category,omitempty"`
	BillID             string          `json:"bill_id,omitempty"`
	PaymentToAccountID string          `json:"payment_to_account_id,omitempty"`
	IsMinimumPayment   bool            `json:"is_minimum_payment"`
}

// BalanceEntry is one row of an account's balance history.
type BalanceEntry struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Date      time.Time       `json:"date"`
}

// Frequency is the recurrence of a bill or income source.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	BiWeekly  Frequency = "bi-weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
	Once      Frequency = "once"
)

// ParseFrequency validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Weekly, BiWeekly, Monthly, Quarterly, Annually, Once:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("invalid frequency %q", s)
	}
}

// MonthlyFactor converts an amount at this frequency to a monthly equivalent.
func (f Frequency) MonthlyFactor() decimal.Decimal {
	switch f {
	case Weekly:
		return decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	case BiWeekly:
		return decimal.NewFromInt(26).Div(decimal.NewFromInt(12))
	case Monthly:
		return decimal.NewFromInt(1)
	case Quarterly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	case Annually:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}

// Bill is a recurring or one-off obligation.
type Bill struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	Frequency Frequency       `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	AccountID string          `json:"account_id,omitempty"`
	Paid      bool            `json:"paid"`
}

// IncomeSource is a recurring inflow.
type IncomeSource struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	NextDate  time.Time       `json:"next_date"`
	AccountID string          `json:"account_id,omitempty"`
}
