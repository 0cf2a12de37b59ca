package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter reads a counter value from the collector's registry.
func counter(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func request(budget string) domain.SimulationRequest {
	return domain.SimulationRequest{
		Accounts: []domain.DebtAccount{
			domain.NewDebtAccount("a", "Card A", decimal.NewFromInt(1000), decimal.NewFromInt(24)),
		},
		MonthlyBudget: decimal.RequireFromString(budget),
		Strategy:      domain.Avalanche,
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(&domain.SimulationResult{}, nil))
	assert.Equal(t, OutcomeCeiling, Outcome(&domain.SimulationResult{CeilingReached: true}, nil))
	assert.Equal(t, OutcomeInvalidBudget, Outcome(nil, calculation.ErrInvalidBudget))
	assert.Equal(t, OutcomeBelowMinimums, Outcome(nil, &calculation.SimulationError{Kind: calculation.KindBudgetBelowMinimums}))
	assert.Equal(t, OutcomeError, Outcome(nil, context.Canceled))
}

func TestCollector_ObservesSimulator(t *testing.T) {
	c := NewCollector()
	sim := calculation.NewSimulator(calculation.DefaultSimulatorOptions())
	sim.Observer = c

	_, err := sim.Run(context.Background(), request("100"))
	require.NoError(t, err)
	_, err = sim.Run(context.Background(), request("100"))
	require.NoError(t, err)
	_, err = sim.Run(context.Background(), request("5"))
	require.Error(t, err)

	assert.Equal(t, 2.0, counter(t, c, "dpgo_simulations_total", map[string]string{"strategy": "avalanche", "outcome": OutcomeOK}))
	assert.Equal(t, 1.0, counter(t, c, "dpgo_simulations_total", map[string]string{"strategy": "avalanche", "outcome": OutcomeBelowMinimums}))
}

func TestCollector_CacheLookup(t *testing.T) {
	c := NewCollector()
	c.CacheLookup(true)
	c.CacheLookup(false)
	c.CacheLookup(false)

	assert.Equal(t, 1.0, counter(t, c, "dpgo_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 2.0, counter(t, c, "dpgo_cache_lookups_total", map[string]string{"result": "miss"}))
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveSimulation(domain.Snowball, &domain.SimulationResult{TotalMonths: 14}, nil, 2*time.Millisecond)

	path := filepath.Join(t.TempDir(), "textfile", "dpgo.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `dpgo_simulations_total{outcome="ok",strategy="snowball"} 1`)
	assert.Contains(t, text, "dpgo_simulated_months_sum 14")
	assert.Contains(t, text, "dpgo_simulation_duration_seconds_count 1")
}
