// Package metrics records simulation activity in Prometheus collectors and
// exports it in the node_exporter textfile format, suitable for a CLI that
// does not serve HTTP.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
)

// Outcome labels.
const (
	OutcomeOK            = "ok"
	OutcomeCeiling       = "ceiling"
	OutcomeInvalidBudget = "invalid_budget"
	OutcomeBelowMinimums = "below_minimums"
	OutcomeError         = "error"
)

// Ensure Collector implements calculation.Observer
var _ calculation.Observer = (*Collector)(nil)

// Collector holds the dpgo collectors in a private registry.
type Collector struct {
	registry    *prometheus.Registry
	simulations *prometheus.CounterVec
	duration    prometheus.Histogram
	months      prometheus.Histogram
	cache       *prometheus.CounterVec
}

// NewCollector creates and registers the collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dpgo",
			Name:      "simulations_total",
			Help:      "Payoff simulations run, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dpgo",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of a payoff simulation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		months: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dpgo",
			Name:      "simulated_months",
			Help:      "Months until debt free for simulations that finished.",
			Buckets:   []float64{6, 12, 24, 36, 60, 120, 240, 480, 720},
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dpgo",
			Name:      "cache_lookups_total",
			Help:      "Result cache reads, by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(c.simulations, c.duration, c.months, c.cache)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSimulation implements calculation.Observer.
func (c *Collector) ObserveSimulation(strategy domain.Strategy, result *domain.SimulationResult, err error, elapsed time.Duration) {
	outcome := Outcome(result, err)
	c.simulations.WithLabelValues(string(strategy), outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK && result.TotalMonths.Known() {
		c.months.Observe(float64(result.TotalMonths))
	}
}

// CacheLookup counts a result cache read.
func (c *Collector) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cache.WithLabelValues(result).Inc()
}

// Outcome classifies a simulation for the outcome label.
func Outcome(result *domain.SimulationResult, err error) string {
	switch {
	case errors.Is(err, calculation.ErrInvalidBudget):
		return OutcomeInvalidBudget
	case errors.Is(err, calculation.ErrBudgetBelowMinimums):
		return OutcomeBelowMinimums
	case err != nil:
		return OutcomeError
	case result != nil && result.CeilingReached:
		return OutcomeCeiling
	default:
		return OutcomeOK
	}
}

// WriteTextfile writes the current metric values to path, creating parent
// directories. The write is atomic.
func (c *Collector) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
