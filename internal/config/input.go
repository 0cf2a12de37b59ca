package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var maxAPR = decimal.NewFromInt(100)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return plan, nil
}

// Parse decodes and validates a YAML plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if plan.Strategy == "" {
		plan.Strategy = domain.Avalanche
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates a loaded plan. A zero budget is accepted so that
// plans can feed the budget solver; the simulator rejects it on its own.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan.MonthlyBudget.IsNegative() {
		return fmt.Errorf("monthly budget cannot be negative")
	}

	strategy, err := domain.ParseStrategy(string(plan.Strategy))
	if err != nil {
		return err
	}
	plan.Strategy = strategy

	if len(plan.Accounts) == 0 {
		return fmt.Errorf("no accounts provided")
	}

	ids := make(map[string]bool, len(plan.Accounts))
	for i, account := range plan.DebtAccounts() {
		if err := ip.validateAccount(&plan.Accounts[i]); err != nil {
			return fmt.Errorf("account %d (%s) validation failed: %w", i, account.Label(), err)
		}
		if ids[account.ID] {
			return fmt.Errorf("duplicate account id %q", account.ID)
		}
		ids[account.ID] = true
	}

	if strategy == domain.Custom && len(plan.CustomOrder) == 0 {
		return fmt.Errorf("custom strategy requires custom_order")
	}
	for _, id := range plan.CustomOrder {
		if !ids[id] {
			return fmt.Errorf("custom_order references unknown account %q", id)
		}
	}

	if plan.MinimumPayment != nil {
		if err := ip.validateMinimumRule(plan.MinimumPayment); err != nil {
			return fmt.Errorf("minimum payment validation failed: %w", err)
		}
	}

	if plan.TargetMonths < 0 || plan.TargetMonths > calculation.DefaultMaxMonths {
		return fmt.Errorf("target months must be between 0 and %d, got %d", calculation.DefaultMaxMonths, plan.TargetMonths)
	}

	return nil
}

// validateAccount validates a single plan account
func (ip *InputParser) validateAccount(account *domain.PlanAccount) error {
	if account.Name == "" && account.ID == "" {
		return fmt.Errorf("name or id is required")
	}
	if account.Balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}
	if account.APR.IsNegative() {
		return fmt.Errorf("APR cannot be negative")
	}
	if account.APR.GreaterThan(maxAPR) {
		return fmt.Errorf("APR must be a percentage no greater than 100, got %s", account.APR)
	}
	return nil
}

// validateMinimumRule validates a custom minimum payment rule
func (ip *InputParser) validateMinimumRule(rule *domain.MinimumPaymentRule) error {
	if rule.Percent.IsNegative() || rule.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percent must be between 0 and 100")
	}
	if rule.Fixed.IsNegative() {
		return fmt.Errorf("fixed amount cannot be negative")
	}
	if rule.Percent.IsZero() && rule.Fixed.IsZero() {
		return fmt.Errorf("percent or fixed amount is required")
	}
	return nil
}
