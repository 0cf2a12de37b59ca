package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/config"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/ledger"
)

// planInput collects the flags that build or override a plan.
type planInput struct {
	budget     float64
	strategy   string
	order      []string
	accounts   []string
	fromLedger bool
}

func (p *planInput) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64VarP(&p.budget, "budget", "b", 0, "Monthly budget (overrides the plan file)")
	flags.StringVarP(&p.strategy, "strategy", "s", "", "Payoff strategy: avalanche, snowball or custom")
	flags.StringSliceVar(&p.order, "order", nil, "Account IDs by priority for the custom strategy")
	flags.StringArrayVarP(&p.accounts, "account", "a", nil, `Debt as "name,balance,apr" (repeatable)`)
	flags.BoolVar(&p.fromLedger, "from-ledger", false, "Use the credit cards in the ledger as the accounts")
}

// load builds the plan from the plan file argument, the ledger or the
// --account flags, then applies the budget and strategy overrides.
func (p *planInput) load(ctx context.Context, cmd *cobra.Command, a *app, args []string) (*domain.Plan, error) {
	parser := config.NewInputParser()

	var plan *domain.Plan
	switch {
	case len(args) > 0:
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		plan = loaded
	case p.fromLedger:
		accounts, err := ledgerPlanAccounts(ctx, a)
		if err != nil {
			return nil, err
		}
		plan = &domain.Plan{Name: "Ledger credit cards", Accounts: accounts}
	case len(p.accounts) > 0:
		accounts, err := parseAccountFlags(p.accounts)
		if err != nil {
			return nil, err
		}
		plan = &domain.Plan{Accounts: accounts}
	default:
		return nil, fmt.Errorf("a plan file, --account flags or --from-ledger is required")
	}

	if cmd.Flags().Changed("budget") {
		budget, err := calculation.BudgetFromFloat(p.budget)
		if err != nil {
			return nil, err
		}
		plan.MonthlyBudget = budget
	}
	if p.strategy != "" {
		plan.Strategy = domain.Strategy(p.strategy)
	}
	if len(p.order) > 0 {
		plan.CustomOrder = p.order
	}

	if err := parser.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return plan, nil
}

// parseAccountFlags parses "name,balance,apr" values.
func parseAccountFlags(values []string) ([]domain.PlanAccount, error) {
	accounts := make([]domain.PlanAccount, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --account %q: expected name,balance,apr", v)
		}
		balance, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid balance in --account %q: %w", v, err)
		}
		apr, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(parts[2], "%")))
		if err != nil {
			return nil, fmt.Errorf("invalid APR in --account %q: %w", v, err)
		}
		accounts = append(accounts, domain.PlanAccount{
			Name:    strings.TrimSpace(parts[0]),
			Balance: balance,
			APR:     apr,
		})
	}
	return accounts, nil
}

// ledgerPlanAccounts snapshots the ledger's credit cards carrying a balance.
func ledgerPlanAccounts(ctx context.Context, a *app) ([]domain.PlanAccount, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	all, err := store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	debts := ledger.DebtAccounts(all)
	if len(debts) == 0 {
		return nil, fmt.Errorf("the ledger has no credit cards with a balance")
	}

	accounts := make([]domain.PlanAccount, 0, len(debts))
	for _, d := range debts {
		accounts = append(accounts, domain.PlanAccount{
			ID:      d.ID,
			Name:    d.Name,
			Balance: d.InitialBalance,
			APR:     d.APR,
		})
	}
	return accounts, nil
}
