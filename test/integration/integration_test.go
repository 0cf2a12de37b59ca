package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/dpgo/internal/breakeven"
	"github.com/rgehrsitz/dpgo/internal/cache"
	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/compare"
	"github.com/rgehrsitz/dpgo/internal/config"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/ledger"
	"github.com/rgehrsitz/dpgo/internal/metrics"
	"github.com/rgehrsitz/dpgo/internal/output"
	"github.com/rgehrsitz/dpgo/internal/storage/sqlstore"
)

const planFile = "../testdata/plan.yaml"

func loadPlan(t *testing.T) *domain.Plan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(planFile)
	require.NoError(t, err)
	return plan
}

func newSimulator(plan *domain.Plan) *calculation.Simulator {
	opts := calculation.DefaultSimulatorOptions()
	opts.MinimumRule = plan.MinimumRule()
	opts.RecordSchedule = true
	return calculation.NewSimulator(opts)
}

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	t.Run("Plan_To_Report", testPlanToReport)
	t.Run("Ledger_To_Simulation", testLedgerToSimulation)
	t.Run("Cached_Runs", testCachedRuns)
	t.Run("Compare_And_Solve", testCompareAndSolve)
}

// testPlanToReport loads a plan, simulates it and renders every format
func testPlanToReport(t *testing.T) {
	plan := loadPlan(t)
	result, err := newSimulator(plan).Run(context.Background(), plan.Request())
	require.NoError(t, err)

	assert.Len(t, result.PerAccount, 3)
	assert.True(t, result.TotalMonths.Known())
	assert.False(t, result.CeilingReached)
	assert.True(t, result.TotalPaid.Equal(result.TotalDebt().Add(result.TotalInterest)))

	for _, format := range []string{"console", "console-verbose", "csv", "json", "html"} {
		t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
			f := output.GetFormatterByName(format)
			require.NotNil(t, f)
			data, err := f.Format(result)
			require.NoError(t, err, "Should generate %s output", format)
			assert.NotEmpty(t, data)
		})
	}
}

// testLedgerToSimulation records card activity in SQLite and simulates the
// resulting balances
func testLedgerToSimulation(t *testing.T) {
	ctx := context.Background()
	store, err := sqlstore.Open(sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	visa := &domain.Account{
		Name:           "Visa",
		Type:           domain.AccountCreditCard,
		CurrentBalance: decimal.NewFromInt(3000),
		CreditLimit:    decimal.NewFromInt(6000),
		APR:            decimal.RequireFromString("22.99"),
	}
	store1 := &domain.Account{
		Name:           "Store Card",
		Type:           domain.AccountCreditCard,
		CurrentBalance: decimal.NewFromInt(400),
		CreditLimit:    decimal.NewFromInt(1000),
		APR:            decimal.RequireFromString("26.99"),
	}
	checking := &domain.Account{
		Name:           "Checking",
		Type:           domain.AccountChecking,
		CurrentBalance: decimal.NewFromInt(2500),
	}
	for _, a := range []*domain.Account{visa, store1, checking} {
		require.NoError(t, store.CreateAccount(ctx, a))
	}

	require.NoError(t, store.CreateTransaction(ctx, &domain.Transaction{
		AccountID: visa.ID, Type: domain.Withdrawal, Amount: decimal.NewFromInt(250), Description: "Flights",
	}))
	require.NoError(t, store.CreateTransaction(ctx, &domain.Transaction{
		AccountID: checking.ID, Type: domain.Transfer, Amount: decimal.NewFromInt(400),
		PaymentToAccountID: store1.ID, Description: "Pay off store card",
	}))

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)

	summary := ledger.SummarizeCards(accounts)
	assert.Equal(t, 2, summary.Cards)
	assert.True(t, summary.TotalOwed.Equal(decimal.NewFromInt(3250)), summary.TotalOwed.String())

	debts := ledger.DebtAccounts(accounts)
	require.Len(t, debts, 1, "paid-off cards are not simulated")
	assert.Equal(t, visa.ID, debts[0].ID)

	req := domain.SimulationRequest{Accounts: debts, MonthlyBudget: decimal.NewFromInt(300), Strategy: domain.Avalanche}
	result, err := calculation.NewSimulator(calculation.DefaultSimulatorOptions()).Run(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.TotalMonths.Known())
	assert.True(t, result.PerAccount[0].InitialBalance.Equal(decimal.NewFromInt(3250)))
}

// testCachedRuns checks that a cached result matches a fresh one and that
// metrics see both lookups
func testCachedRuns(t *testing.T) {
	plan := loadPlan(t)
	collector := metrics.NewCollector()

	sim := newSimulator(plan)
	sim.Observer = collector
	runner := cache.NewCachedRunner(sim, cache.NewMemory(), time.Hour)
	hits := 0
	runner.OnLookup = func(hit bool) {
		collector.CacheLookup(hit)
		if hit {
			hits++
		}
	}

	ctx := context.Background()
	first, err := runner.Run(ctx, plan.Request())
	require.NoError(t, err)
	second, err := runner.Run(ctx, plan.Request())
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first.TotalMonths, second.TotalMonths)
	assert.True(t, first.TotalInterest.Equal(second.TotalInterest))

	path := filepath.Join(t.TempDir(), "dpgo.prom")
	require.NoError(t, collector.WriteTextfile(path))
}

// testCompareAndSolve runs the comparison and the budget solver over the
// same plan
func testCompareAndSolve(t *testing.T) {
	plan := loadPlan(t)
	runner := newSimulator(plan)
	ctx := context.Background()

	set, err := compare.NewCompareEngine(runner).Compare(ctx, plan.Request(), compare.CompareOptions{})
	require.NoError(t, err)
	require.NotNil(t, set.BaseResult)
	assert.Equal(t, domain.Avalanche, set.Best, "avalanche never costs more interest")

	opts := breakeven.DefaultSolverOptions()
	opts.MinimumRule = plan.MinimumRule()
	solved, err := breakeven.NewSolver(runner, opts).Solve(ctx, breakeven.SolverRequest{
		Request:      plan.Request(),
		TargetMonths: plan.TargetMonths,
	})
	require.NoError(t, err)
	assert.True(t, solved.Success)
	assert.LessOrEqual(t, int(solved.TotalMonths), plan.TargetMonths)
}

// TestIntegrationBenchmarks checks that the heaviest paths stay fast
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	plan := loadPlan(t)
	runner := newSimulator(plan)

	start := time.Now()
	_, err := breakeven.NewDefaultSolver(runner).SolveStrategies(context.Background(), breakeven.SolverRequest{
		Request:      plan.Request(),
		TargetMonths: 12,
	}, nil)
	duration := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, duration, 30*time.Second, "Solving both strategies should complete within 30 seconds")
	t.Logf("Solved both strategies in %v", duration)
}
