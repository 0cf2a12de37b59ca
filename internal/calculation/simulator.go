package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/rgehrsitz/dpgo/internal/sequencing"
	"github.com/shopspring/decimal"
)

// DefaultMaxMonths is the simulation ceiling (60 years).
const DefaultMaxMonths = 720

// Runner runs one payoff simulation. Simulator implements it; caching and
// instrumentation wrap it.
type Runner interface {
	Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error)
}

// Observer is notified after every Run, successful or not.
type Observer interface {
	ObserveSimulation(strategy domain.Strategy, result *domain.SimulationResult, err error, elapsed time.Duration)
}

// SimulatorOptions tunes the simulation loop.
type SimulatorOptions struct {
	MaxMonths      int
	Epsilon        decimal.Decimal
	MinimumRule    domain.MinimumPaymentRule
	RecordSchedule bool
}

// DefaultSimulatorOptions returns a 720 month ceiling, half-cent tolerance and
// the default minimum payment rule.
func DefaultSimulatorOptions() SimulatorOptions {
	return SimulatorOptions{
		MaxMonths:   DefaultMaxMonths,
		Epsilon:     money.Epsilon,
		MinimumRule: domain.DefaultMinimumPaymentRule(),
	}
}

// CacheSalt identifies the options that change simulation results, so that
// cached results from differently configured simulators never mix.
func (o SimulatorOptions) CacheSalt() string {
	return fmt.Sprintf("months=%d eps=%s min=%s%%+%s schedule=%t",
		o.MaxMonths, o.Epsilon, o.MinimumRule.Percent, o.MinimumRule.Fixed, o.RecordSchedule)
}

// Simulator runs the coupled month-by-month payoff of several accounts that
// share one monthly budget. It keeps no state between runs and is safe for
// concurrent use.
type Simulator struct {
	Options  SimulatorOptions
	Logger   Logger
	Observer Observer
}

// NewSimulator creates a simulator with the given options. Zero-valued
// options fall back to the defaults.
func NewSimulator(opts SimulatorOptions) *Simulator {
	defaults := DefaultSimulatorOptions()
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = defaults.MaxMonths
	}
	if !opts.Epsilon.IsPositive() {
		opts.Epsilon = defaults.Epsilon
	}
	if opts.MinimumRule.Percent.IsZero() && opts.MinimumRule.Fixed.IsZero() {
		opts.MinimumRule = defaults.MinimumRule
	}
	return &Simulator{Options: opts, Logger: NopLogger{}}
}

// CeilingWarning is the advisory attached to results that hit the ceiling.
func CeilingWarning(maxMonths int) string {
	return fmt.Sprintf("payment too low to guarantee full payoff within %d years", maxMonths/12)
}

// Run validates the request and simulates until every balance is paid off or
// the month ceiling is reached. The request accounts are copied; the caller's
// slice is never modified.
func (s *Simulator) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	start := time.Now()
	result, err := s.run(ctx, req)
	if s.Observer != nil {
		s.Observer.ObserveSimulation(req.Strategy, result, err, time.Since(start))
	}
	return result, err
}

// CacheSalt returns the salt of the simulator's options.
func (s *Simulator) CacheSalt() string {
	return s.Options.CacheSalt()
}

// SetLogger sets the logger; nil restores the no-op logger.
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	s.Logger = l
}

func (s *Simulator) logger() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}
	return s.Logger
}

func (s *Simulator) run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	log := s.logger()
	opts := s.Options
	eps := opts.Epsilon

	if !req.MonthlyBudget.IsPositive() {
		return nil, invalidBudgetError()
	}
	budget := money.RoundCents(req.MonthlyBudget)

	strategy := sequencing.CreateStrategy(req.Strategy, req.CustomOrder)

	// Working copies; caller data stays untouched
	accounts := make([]*domain.DebtAccount, len(req.Accounts))
	for i := range req.Accounts {
		a := req.Accounts[i]
		a.InitialBalance = money.NonNegative(a.InitialBalance)
		a.APR = money.NonNegative(a.APR)
		a.CurrentBalance = a.InitialBalance
		a.TotalInterest = decimal.Zero
		a.PaymentOrder = 0
		a.MonthsToPayoff = domain.PayoffPending
		accounts[i] = &a
	}

	active := make([]*domain.DebtAccount, 0, len(accounts))
	minimumTotal := decimal.Zero
	for _, a := range accounts {
		if a.InitialBalance.GreaterThan(eps) {
			active = append(active, a)
			minimumTotal = minimumTotal.Add(MinimumPaymentWithRule(a.InitialBalance, a.APR, opts.MinimumRule))
			continue
		}
		a.CurrentBalance = decimal.Zero
		a.MonthsToPayoff = 0
	}

	minimumTotal = money.RoundCents(minimumTotal)
	if budget.LessThan(minimumTotal) {
		log.Warnf("budget %s below required minimums %s", budget, minimumTotal)
		return nil, belowMinimumsError(minimumTotal)
	}

	sequencing.Rank(active, strategy)
	log.Debugf("simulating %d accounts, strategy=%s budget=%s", len(active), strategy.Name(), budget)

	result := &domain.SimulationResult{
		Strategy:      req.Strategy,
		MonthlyBudget: budget,
	}
	if result.Strategy == "" {
		result.Strategy = domain.Avalanche
	}

	month := 0
	for hasBalance(active, eps) && month < opts.MaxMonths {
		if month%12 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("simulation cancelled at month %d: %w", month, err)
			}
		}
		month++

		sequencing.SortWithin(active, strategy, eps)
		open := openAccounts(active, eps)

		snapshot := s.newSnapshot(month, open)

		// Minimums are floored on the balance before this month's interest
		minimums := make([]decimal.Decimal, len(open))
		reserved := decimal.Zero
		for i, a := range open {
			minimums[i] = MinimumPaymentWithRule(a.CurrentBalance, a.APR, opts.MinimumRule)
			if i > 0 {
				reserved = reserved.Add(minimums[i])
			}
		}

		for _, a := range open {
			interest := money.RoundCents(a.CurrentBalance.Mul(money.MonthlyRate(a.APR)))
			a.CurrentBalance = a.CurrentBalance.Add(interest)
			a.TotalInterest = a.TotalInterest.Add(interest)
			if snapshot != nil {
				snapshot.Interest = snapshot.Interest.Add(interest)
			}
		}

		remaining := budget
		for i, a := range open {
			var payment decimal.Decimal
			if i == 0 {
				// Target takes every dollar not needed for the other minimums
				surplus := money.NonNegative(remaining.Sub(reserved))
				payment = decimal.Min(a.CurrentBalance, decimal.Max(minimums[i], surplus), remaining)
			} else {
				payment = decimal.Min(a.CurrentBalance, minimums[i], remaining)
			}
			payment = decimal.Min(money.RoundCents(payment), remaining)
			if payment.IsNegative() {
				payment = decimal.Zero
			}

			remaining = remaining.Sub(payment)
			a.CurrentBalance = a.CurrentBalance.Sub(payment)
			if a.CurrentBalance.Abs().LessThanOrEqual(eps) || a.CurrentBalance.IsNegative() {
				a.CurrentBalance = decimal.Zero
				if a.MonthsToPayoff.IsPending() {
					a.MonthsToPayoff = domain.PayoffMonths(month)
					log.Debugf("account %s paid off in month %d", a.ID, month)
				}
			}

			if snapshot != nil {
				snapshot.Paid = snapshot.Paid.Add(payment)
				snapshot.Payments[a.ID] = payment
				snapshot.Balances[a.ID] = a.CurrentBalance
			}
		}

		if snapshot != nil {
			result.Schedule = append(result.Schedule, *snapshot)
		}
	}

	if hasBalance(active, eps) {
		for _, a := range active {
			if a.CurrentBalance.GreaterThan(eps) {
				a.MonthsToPayoff = domain.PayoffNever
			}
		}
		result.CeilingReached = true
		result.Warning = CeilingWarning(opts.MaxMonths)
		log.Warnf("ceiling of %d months reached with balance remaining", opts.MaxMonths)
	}

	aggregate(result, accounts, active)
	return result, nil
}

func (s *Simulator) newSnapshot(month int, open []*domain.DebtAccount) *domain.MonthSnapshot {
	if !s.Options.RecordSchedule {
		return nil
	}
	return &domain.MonthSnapshot{
		Month:    month,
		Interest: decimal.Zero,
		Paid:     decimal.Zero,
		Payments: make(map[string]decimal.Decimal, len(open)),
		Balances: make(map[string]decimal.Decimal, len(open)),
	}
}

func aggregate(result *domain.SimulationResult, accounts, active []*domain.DebtAccount) {
	result.TotalMonths = 0
	result.TotalInterest = decimal.Zero
	totalBalance := decimal.Zero

	// Balances within epsilon of zero were never simulated and are not paid
	for _, a := range active {
		result.TotalMonths = domain.MaxPayoffMonths(result.TotalMonths, a.MonthsToPayoff)
		totalBalance = totalBalance.Add(a.InitialBalance)
	}

	result.PerAccount = make([]domain.DebtAccount, len(accounts))
	for i, a := range accounts {
		result.TotalInterest = result.TotalInterest.Add(a.TotalInterest)
		result.PerAccount[i] = *a
	}
	result.TotalPaid = totalBalance.Add(result.TotalInterest)
}

func hasBalance(accounts []*domain.DebtAccount, eps decimal.Decimal) bool {
	for _, a := range accounts {
		if a.CurrentBalance.GreaterThan(eps) {
			return true
		}
	}
	return false
}

func openAccounts(sorted []*domain.DebtAccount, eps decimal.Decimal) []*domain.DebtAccount {
	open := make([]*domain.DebtAccount, 0, len(sorted))
	for _, a := range sorted {
		if a.CurrentBalance.GreaterThan(eps) {
			open = append(open, a)
		}
	}
	return open
}
