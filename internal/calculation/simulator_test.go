package calculation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCardRequest(budget string, strategy domain.Strategy) domain.SimulationRequest {
	return domain.SimulationRequest{
		Accounts: []domain.DebtAccount{
			domain.NewDebtAccount("a", "Card A", dec("1000"), dec("24")),
			domain.NewDebtAccount("b", "Card B", dec("500"), dec("12")),
		},
		MonthlyBudget: dec(budget),
		Strategy:      strategy,
	}
}

func run(t *testing.T, sim *Simulator, req domain.SimulationRequest) *domain.SimulationResult {
	t.Helper()
	result, err := sim.Run(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestNewSimulator(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{})

	assert.Equal(t, DefaultMaxMonths, sim.Options.MaxMonths)
	assert.True(t, money.Epsilon.Equal(sim.Options.Epsilon))
	assert.True(t, dec("25").Equal(sim.Options.MinimumRule.Fixed))
	assert.IsType(t, NopLogger{}, sim.Logger)

	custom := &TestLogger{}
	sim.SetLogger(custom)
	assert.Equal(t, custom, sim.Logger)
	sim.SetLogger(nil)
	assert.IsType(t, NopLogger{}, sim.Logger, "nil should restore the no-op logger")
}

func TestSimulator_TwoCardAvalanche(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	result := run(t, sim, twoCardRequest("200", domain.Avalanche))

	a, ok := result.Account("a")
	require.True(t, ok)
	b, ok := result.Account("b")
	require.True(t, ok)

	assert.Equal(t, 1, a.PaymentOrder, "higher APR card ranks first")
	assert.Equal(t, 2, b.PaymentOrder)
	assert.True(t, a.MonthsToPayoff.Known())
	assert.True(t, b.MonthsToPayoff.Known())
	assert.LessOrEqual(t, int(a.MonthsToPayoff), int(b.MonthsToPayoff))
	assert.True(t, result.TotalInterest.IsPositive())
	assert.Equal(t, domain.MaxPayoffMonths(a.MonthsToPayoff, b.MonthsToPayoff), result.TotalMonths)
	assert.False(t, result.CeilingReached)
	assert.Empty(t, result.Warning)
	assert.True(t, a.CurrentBalance.IsZero())
	assert.True(t, b.CurrentBalance.IsZero())

	expectedPaid := dec("1500").Add(result.TotalInterest)
	assert.True(t, expectedPaid.Equal(result.TotalPaid), "total paid %s, want %s", result.TotalPaid, expectedPaid)
}

func TestSimulator_Snowball(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	result := run(t, sim, twoCardRequest("200", domain.Snowball))

	b, _ := result.Account("b")
	a, _ := result.Account("a")
	assert.Equal(t, 1, b.PaymentOrder, "smaller balance ranks first")
	assert.Equal(t, 2, a.PaymentOrder)
	assert.LessOrEqual(t, int(b.MonthsToPayoff), int(a.MonthsToPayoff))
	assert.Equal(t, domain.Snowball, result.Strategy)
}

func TestSimulator_CustomOrder(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	req := twoCardRequest("200", domain.Custom)
	req.CustomOrder = []string{"b", "a"}

	result := run(t, sim, req)
	b, _ := result.Account("b")
	assert.Equal(t, 1, b.PaymentOrder)
}

func TestSimulator_AvalancheSavesInterest(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	avalanche := run(t, sim, twoCardRequest("200", domain.Avalanche))
	snowball := run(t, sim, twoCardRequest("200", domain.Snowball))

	assert.True(t, avalanche.TotalInterest.LessThanOrEqual(snowball.TotalInterest),
		"avalanche %s should not cost more than snowball %s", avalanche.TotalInterest, snowball.TotalInterest)
}

func TestSimulator_ZeroAPRSingleCard(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	result := run(t, sim, domain.SimulationRequest{
		Accounts:      []domain.DebtAccount{domain.NewDebtAccount("only", "Only", dec("1200"), dec("0"))},
		MonthlyBudget: dec("100"),
		Strategy:      domain.Avalanche,
	})

	assert.Equal(t, domain.PayoffMonths(12), result.TotalMonths)
	assert.True(t, result.TotalInterest.IsZero())
	assert.True(t, dec("1200").Equal(result.TotalPaid))
}

func TestSimulator_ZeroAPRMatchesCeilDivision(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	result := run(t, sim, domain.SimulationRequest{
		Accounts:      []domain.DebtAccount{domain.NewDebtAccount("only", "", dec("1000"), dec("0"))},
		MonthlyBudget: dec("300"),
	})

	assert.Equal(t, domain.PayoffMonths(4), result.TotalMonths)
	assert.Equal(t, domain.Avalanche, result.Strategy, "empty strategy defaults to avalanche")
}

func TestSimulator_Validation(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())

	t.Run("budget below first month interest", func(t *testing.T) {
		_, err := sim.Run(context.Background(), domain.SimulationRequest{
			Accounts:      []domain.DebtAccount{domain.NewDebtAccount("x", "X", dec("5000"), dec("20"))},
			MonthlyBudget: dec("50"),
			Strategy:      domain.Avalanche,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBudgetBelowMinimums))

		var simErr *SimulationError
		require.True(t, errors.As(err, &simErr))
		assert.Equal(t, KindBudgetBelowMinimums, simErr.Kind)
		assert.True(t, dec("133.33").Equal(simErr.MinimumTotal))
		assert.Contains(t, simErr.Message, "$133.33")
		assert.Equal(t, "Your monthly payment must be at least $133.33 to cover all minimum payments.", err.Error())
	})

	t.Run("one cent below minimums", func(t *testing.T) {
		// Minimums: 30 for A and 25 for B
		_, err := sim.Run(context.Background(), twoCardRequest("54.99", domain.Avalanche))
		assert.ErrorIs(t, err, ErrBudgetBelowMinimums)

		_, err = sim.Run(context.Background(), twoCardRequest("55", domain.Avalanche))
		assert.NoError(t, err)
	})

	invalid := []struct {
		name   string
		budget decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", dec("-10")},
	}
	for _, tt := range invalid {
		t.Run("invalid budget "+tt.name, func(t *testing.T) {
			req := twoCardRequest("1", domain.Avalanche)
			req.MonthlyBudget = tt.budget
			result, err := sim.Run(context.Background(), req)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidBudget)
			assert.Equal(t, "Please enter a valid monthly payment amount.", err.Error())
		})
	}
}

func TestBudgetFromFloat(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -5} {
		_, err := BudgetFromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidBudget, "value %v", f)
	}

	budget, err := BudgetFromFloat(250.5)
	require.NoError(t, err)
	assert.True(t, dec("250.5").Equal(budget))
}

func TestSimulator_ZeroBalanceAccountsAreUnranked(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	req := twoCardRequest("200", domain.Avalanche)
	req.Accounts = append(req.Accounts,
		domain.NewDebtAccount("paid", "Paid", dec("0"), dec("29")),
		domain.NewDebtAccount("nan", "Bad input", money.FromFloat(math.NaN()), money.FromFloat(math.NaN())),
	)

	result := run(t, sim, req)
	require.Len(t, result.PerAccount, 4)

	for _, id := range []string{"paid", "nan"} {
		acct, ok := result.Account(id)
		require.True(t, ok)
		assert.Equal(t, 0, acct.PaymentOrder)
		assert.Equal(t, domain.PayoffMonths(0), acct.MonthsToPayoff)
		assert.True(t, acct.TotalInterest.IsZero())
	}
	assert.Equal(t, "paid", result.PerAccount[2].ID, "per-account results keep input order")
	assert.Len(t, result.InPaymentOrder(), 2)
}

func TestSimulator_DustBalancesAreNotPaid(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	req := domain.SimulationRequest{
		Accounts: []domain.DebtAccount{
			domain.NewDebtAccount("dust", "Dust", dec("0.003"), dec("20")),
			domain.NewDebtAccount("card", "Card", dec("100"), dec("0")),
		},
		MonthlyBudget: dec("100"),
		Strategy:      domain.Avalanche,
	}

	result := run(t, sim, req)
	dust, ok := result.Account("dust")
	require.True(t, ok)
	assert.Equal(t, domain.PayoffMonths(0), dust.MonthsToPayoff)
	assert.Equal(t, domain.PayoffMonths(1), result.TotalMonths)
	assert.True(t, result.TotalPaid.Equal(dec("100")), "total paid %s", result.TotalPaid)
}

func TestSimulatorOptions_CacheSalt(t *testing.T) {
	base := DefaultSimulatorOptions()
	assert.Equal(t, base.CacheSalt(), DefaultSimulatorOptions().CacheSalt())
	assert.Equal(t, base.CacheSalt(), NewSimulator(base).CacheSalt())

	stricter := base
	stricter.MinimumRule = domain.MinimumPaymentRule{Percent: dec("5"), Fixed: dec("25")}
	assert.NotEqual(t, base.CacheSalt(), stricter.CacheSalt())

	shorter := base
	shorter.MaxMonths = 120
	assert.NotEqual(t, base.CacheSalt(), shorter.CacheSalt())

	looser := base
	looser.Epsilon = dec("0.01")
	assert.NotEqual(t, base.CacheSalt(), looser.CacheSalt())
}

func TestSimulator_DoesNotMutateCaller(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	req := twoCardRequest("200", domain.Avalanche)
	before := make([]domain.DebtAccount, len(req.Accounts))
	copy(before, req.Accounts)

	run(t, sim, req)

	assert.Equal(t, before, req.Accounts)
	assert.True(t, req.Accounts[0].CurrentBalance.Equal(dec("1000")))
	assert.True(t, req.Accounts[0].MonthsToPayoff.IsPending())
}

func TestSimulator_Deterministic(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{RecordSchedule: true})
	first := run(t, sim, twoCardRequest("175", domain.Snowball))
	second := run(t, sim, twoCardRequest("175", domain.Snowball))

	assert.Equal(t, first, second)
}

func TestSimulator_ScheduleConservesMoney(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{RecordSchedule: true})
	result := run(t, sim, twoCardRequest("120", domain.Avalanche))

	require.Len(t, result.Schedule, int(result.TotalMonths))

	paid := map[string]decimal.Decimal{}
	for _, month := range result.Schedule {
		assert.True(t, month.Paid.LessThanOrEqual(dec("120")), "month %d overspent: %s", month.Month, month.Paid)
		for id, p := range month.Payments {
			assert.False(t, p.IsNegative())
			paid[id] = paid[id].Add(p)
		}
	}

	for _, acct := range result.PerAccount {
		assert.False(t, acct.TotalInterest.IsNegative())
		expected := acct.InitialBalance.Add(acct.TotalInterest)
		assert.True(t, expected.Sub(paid[acct.ID]).Abs().LessThanOrEqual(money.Epsilon),
			"account %s paid %s, owed %s", acct.ID, paid[acct.ID], expected)
	}
}

func TestSimulator_MoreBudgetNeverSlower(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	budgets := []string{"60", "100", "200", "400", "800", "2000"}

	var prev *domain.SimulationResult
	for _, b := range budgets {
		result := run(t, sim, twoCardRequest(b, domain.Avalanche))
		if prev != nil {
			assert.LessOrEqual(t, int(result.TotalMonths), int(prev.TotalMonths), "budget %s", b)
			assert.True(t, result.TotalInterest.LessThanOrEqual(prev.TotalInterest),
				"budget %s: interest %s > %s", b, result.TotalInterest, prev.TotalInterest)
		}
		prev = result
	}
}

func TestSimulator_CeilingReached(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{MaxMonths: 24})
	result := run(t, sim, domain.SimulationRequest{
		Accounts: []domain.DebtAccount{
			domain.NewDebtAccount("quick", "Quick", dec("20"), dec("0")),
			domain.NewDebtAccount("slow", "Slow", dec("2000"), dec("0")),
		},
		MonthlyBudget: dec("50"),
		Strategy:      domain.Snowball,
	})

	quick, _ := result.Account("quick")
	slow, _ := result.Account("slow")

	assert.True(t, result.CeilingReached)
	assert.Equal(t, "payment too low to guarantee full payoff within 2 years", result.Warning)
	assert.Equal(t, domain.PayoffMonths(1), quick.MonthsToPayoff, "paid-off accounts keep their month")
	assert.True(t, slow.MonthsToPayoff.IsNever())
	assert.True(t, result.TotalMonths.IsNever())
	assert.True(t, slow.CurrentBalance.IsPositive())
}

func TestCeilingWarning(t *testing.T) {
	assert.Equal(t, "payment too low to guarantee full payoff within 60 years", CeilingWarning(DefaultMaxMonths))
}

func TestSimulator_Cancelled(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, twoCardRequest("200", domain.Avalanche))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	calls  int
	errors int
	last   domain.Strategy
}

func (o *recordingObserver) ObserveSimulation(strategy domain.Strategy, _ *domain.SimulationResult, err error, _ time.Duration) {
	o.calls++
	o.last = strategy
	if err != nil {
		o.errors++
	}
}

func TestSimulator_Observer(t *testing.T) {
	obs := &recordingObserver{}
	sim := NewSimulator(DefaultSimulatorOptions())
	sim.Observer = obs

	run(t, sim, twoCardRequest("200", domain.Snowball))
	_, _ = sim.Run(context.Background(), twoCardRequest("10", domain.Avalanche))

	assert.Equal(t, 2, obs.calls)
	assert.Equal(t, 1, obs.errors)
	assert.Equal(t, domain.Avalanche, obs.last)
}

// TestLogger records log formats for assertions.
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func TestSimulator_LogsWarnings(t *testing.T) {
	logger := &TestLogger{}
	sim := NewSimulator(DefaultSimulatorOptions())
	sim.SetLogger(logger)

	_, err := sim.Run(context.Background(), twoCardRequest("10", domain.Avalanche))
	require.Error(t, err)
	assert.Contains(t, logger.messages, "WARN: budget %s below required minimums %s")
}
