package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy selects how the monthly budget surplus is directed.
type Strategy string

const (
	// Avalanche pays extra toward the highest APR first.
	Avalanche Strategy = "avalanche"
	// Snowball pays extra toward the smallest balance first.
	Snowball Strategy = "snowball"
	// Custom follows a caller supplied account priority list.
	Custom Strategy = "custom"
)

// ParseStrategy converts user input into a Strategy. An empty string selects
// the avalanche strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Avalanche:
		return Avalanche, nil
	case Snowball:
		return Snowball, nil
	case Custom:
		return Custom, nil
	default:
		return "", fmt.Errorf("unknown payoff strategy %q (valid: avalanche, snowball, custom)", s)
	}
}

// Description returns the one-line explanation shown next to results.
func (s Strategy) Description() string {
	switch s {
	case Avalanche:
		return "Debt Avalanche: paying highest interest rate cards first saves you the most money in interest."
	case Snowball:
		return "Debt Snowball: paying smallest balances first provides psychological wins to keep you motivated."
	case Custom:
		return "Custom order: extra payments follow your own priority list."
	default:
		return ""
	}
}

// PayoffMonths is a simulated month index. Two negative sentinels mark a
// payoff that has not been determined yet and one that is never reached.
type PayoffMonths int

const (
	PayoffPending PayoffMonths = -1
	PayoffNever   PayoffMonths = -2
)

// IsNever reports whether the balance was never extinguished.
func (m PayoffMonths) IsNever() bool { return m == PayoffNever }

// IsPending reports whether the payoff month is still undetermined.
func (m PayoffMonths) IsPending() bool { return m == PayoffPending }

// Known reports whether m holds an actual month count.
func (m PayoffMonths) Known() bool { return m >= 0 }

func (m PayoffMonths) String() string {
	switch m {
	case PayoffNever:
		return "never"
	case PayoffPending:
		return "pending"
	default:
		return strconv.Itoa(int(m))
	}
}

// MaxPayoffMonths returns the later of two payoff months. Never dominates
// every finite value.
func MaxPayoffMonths(a, b PayoffMonths) PayoffMonths {
	if a.IsNever() || b.IsNever() {
		return PayoffNever
	}
	if a > b {
		return a
	}
	return b
}

// MarshalJSON renders never as "Infinity" and pending as null.
func (m PayoffMonths) MarshalJSON() ([]byte, error) {
	switch m {
	case PayoffNever:
		return []byte(`"Infinity"`), nil
	case PayoffPending:
		return []byte("null"), nil
	default:
		return []byte(strconv.Itoa(int(m))), nil
	}
}

func (m *PayoffMonths) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		*m = PayoffPending
		return nil
	case `"Infinity"`:
		*m = PayoffNever
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid payoff months %s: %w", data, err)
	}
	*m = PayoffMonths(n)
	return nil
}

// DebtAccount is one revolving balance taking part in a payoff simulation.
// ID and Name only pass through for correlation with caller data.
type DebtAccount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	APR            decimal.Decimal `json:"apr"`
	MonthsToPayoff PayoffMonths    `json:"monthsToPayoff"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	PaymentOrder   int             `json:"paymentOrder"`
}

// NewDebtAccount creates an account snapshot ready for simulation.
func NewDebtAccount(id, name string, balance, apr decimal.Decimal) DebtAccount {
	return DebtAccount{
		ID:             id,
		Name:           name,
		InitialBalance: balance,
		CurrentBalance: balance,
		APR:            apr,
		MonthsToPayoff: PayoffPending,
	}
}

// Label returns the name, falling back to the ID.
func (a DebtAccount) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// MinimumPaymentRule parameterises the minimum payment formula: the larger of
// Fixed dollars or Percent of the balance plus the month's interest.
type MinimumPaymentRule struct {
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
	Fixed   decimal.Decimal `json:"fixed" yaml:"fixed"`
}

// DefaultMinimumPaymentRule is the common card issuer rule: $25 or 1% plus interest.
func DefaultMinimumPaymentRule() MinimumPaymentRule {
	return MinimumPaymentRule{
		Percent: decimal.NewFromInt(1),
		Fixed:   decimal.NewFromInt(25),
	}
}

// SimulationRequest is built fresh from the caller's account snapshot for
// each run.
type SimulationRequest struct {
	Accounts      []DebtAccount   `json:"accounts"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Strategy      Strategy        `json:"strategy"`
	// CustomOrder lists account IDs by priority for the custom strategy.
	CustomOrder []string `json:"customOrder,omitempty"`
}

// MonthSnapshot records one simulated month.
type MonthSnapshot struct {
	Month    int                        `json:"month"`
	Interest decimal.Decimal            `json:"interest"`
	Paid     decimal.Decimal            `json:"paid"`
	Payments map[string]decimal.Decimal `json:"payments"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// SimulationResult is the outcome of a multi-account payoff simulation.
type SimulationResult struct {
	Strategy      Strategy        `json:"strategy"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	TotalMonths   PayoffMonths    `json:"totalMonths"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	PerAccount    []DebtAccount   `json:"perAccount"`

	// CeilingReached is set when some balance survived the month ceiling;
	// Warning then carries the advisory text.
	CeilingReached bool   `json:"ceilingReached"`
	Warning        string `json:"warning,omitempty"`

	Schedule []MonthSnapshot `json:"schedule,omitempty"`
}

// Account returns the per-account result with the given ID.
func (r *SimulationResult) Account(id string) (DebtAccount, bool) {
	for _, a := range r.PerAccount {
		if a.ID == id {
			return a, true
		}
	}
	return DebtAccount{}, false
}

// InPaymentOrder returns the ranked accounts sorted by PaymentOrder.
// Unranked accounts (no starting balance) are omitted.
func (r *SimulationResult) InPaymentOrder() []DebtAccount {
	ranked := make([]DebtAccount, 0, len(r.PerAccount))
	for _, a := range r.PerAccount {
		if a.PaymentOrder > 0 {
			ranked = append(ranked, a)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].PaymentOrder < ranked[j].PaymentOrder })
	return ranked
}

// TotalDebt sums the starting balances.
func (r *SimulationResult) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.PerAccount {
		if a.InitialBalance.IsPositive() {
			total = total.Add(a.InitialBalance)
		}
	}
	return total
}
