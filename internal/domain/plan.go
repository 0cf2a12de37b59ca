package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Plan is the YAML document describing a payoff scenario.
type Plan struct {
	Name           string              `yaml:"name"`
	MonthlyBudget  decimal.Decimal     `yaml:"monthly_budget"`
	Strategy       Strategy            `yaml:"strategy"`
	CustomOrder    []string            `yaml:"custom_order,omitempty"`
	MinimumPayment *MinimumPaymentRule `yaml:"minimum_payment,omitempty"`
	// TargetMonths is the debt-free horizon used by the budget solver.
	TargetMonths int           `yaml:"target_months,omitempty"`
	Accounts     []PlanAccount `yaml:"accounts"`
}

// PlanAccount is one debt listed in a plan file.
type PlanAccount struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Balance decimal.Decimal `yaml:"balance"`
	APR     decimal.Decimal `yaml:"apr"`
}

// DebtAccounts converts the plan accounts into simulator input. Accounts
// without an ID get a positional one.
func (p *Plan) DebtAccounts() []DebtAccount {
	accounts := make([]DebtAccount, 0, len(p.Accounts))
	for i, a := range p.Accounts {
		id := a.ID
		if id == "" {
			id = fmt.Sprintf("account-%d", i+1)
		}
		accounts = append(accounts, NewDebtAccount(id, a.Name, a.Balance, a.APR))
	}
	return accounts
}

// Request builds a simulation request from the plan.
func (p *Plan) Request() SimulationRequest {
	strategy := p.Strategy
	if strategy == "" {
		strategy = Avalanche
	}
	return SimulationRequest{
		Accounts:      p.DebtAccounts(),
		MonthlyBudget: p.MonthlyBudget,
		Strategy:      strategy,
		CustomOrder:   p.CustomOrder,
	}
}

// MinimumRule returns the plan's minimum payment rule or the default.
func (p *Plan) MinimumRule() MinimumPaymentRule {
	if p.MinimumPayment == nil {
		return DefaultMinimumPaymentRule()
	}
	return *p.MinimumPayment
}
