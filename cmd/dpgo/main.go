package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/cache"
	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/config"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/metrics"
	"github.com/rgehrsitz/dpgo/internal/storage/sqlstore"
	"github.com/rgehrsitz/dpgo/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cacheTTL bounds how long a simulation result is reused.
const cacheTTL = 24 * time.Hour

// app carries the settings shared by every subcommand.
type app struct {
	debug   bool
	noCache bool
	rt      config.Runtime

	collector *metrics.Collector
	closers   []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "dpgo",
		Short: "Debt payoff planner CLI",
		Long: `Plan the payoff of credit cards and other revolving debt.

dpgo simulates one monthly budget shared across several balances using the
avalanche (highest APR first) or snowball (smallest balance first) strategy,
compares strategies, solves for the budget needed to be debt-free by a target
date, and keeps a small ledger of accounts, bills and income.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&a.noCache, "no-cache", false, "Disable the simulation result cache")
	flags.String("db-driver", "", "Ledger database driver: sqlite or postgres (env "+config.EnvDBDriver+")")
	flags.String("db-dsn", "", "Ledger database DSN or SQLite path (env "+config.EnvDBDSN+")")
	flags.String("redis", "", "Redis address for the result cache (env "+config.EnvRedisAddr+")")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile (env "+config.EnvMetricsFile+")")

	rootCmd.AddCommand(
		simulateCmd(a),
		estimateCmd(),
		minimumCmd(a),
		compareCmd(a),
		solveCmd(a),
		validateCmd(),
		ledgerCmd(a),
		summaryCmd(a),
		exploreCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// setup configures logging and resolves runtime settings, letting flags
// override the environment.
func (a *app) setup(cmd *cobra.Command) error {
	if a.debug {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Setup()
	}

	a.rt = config.LoadRuntime()
	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		a.rt.DBDriver, _ = flags.GetString("db-driver")
		if !flags.Changed("db-dsn") && a.rt.DBDriver != sqlstore.DriverSQLite {
			a.rt.DBDSN = ""
		}
	}
	if flags.Changed("db-dsn") {
		a.rt.DBDSN, _ = flags.GetString("db-dsn")
	}
	if flags.Changed("redis") {
		a.rt.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Changed("metrics-file") {
		a.rt.MetricsFile, _ = flags.GetString("metrics-file")
	}

	a.collector = metrics.NewCollector()
	slog.Debug("runtime configured", "db_driver", a.rt.DBDriver, "redis", a.rt.RedisAddr != "", "metrics_file", a.rt.MetricsFile)
	return nil
}

// finish exports metrics and releases cache connections.
func (a *app) finish() error {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close", "error", err)
		}
	}
	a.closers = nil

	if a.rt.MetricsFile == "" || a.collector == nil {
		return nil
	}
	if err := a.collector.WriteTextfile(a.rt.MetricsFile); err != nil {
		return err
	}
	slog.Debug("metrics written", "path", a.rt.MetricsFile)
	return nil
}

// runner builds the simulator for rule, wrapped in the result cache unless
// disabled. Schedules are always recorded so that cached results can serve
// every output format.
func (a *app) runner(rule domain.MinimumPaymentRule) calculation.Runner {
	opts := calculation.DefaultSimulatorOptions()
	opts.MinimumRule = rule
	opts.RecordSchedule = true

	sim := calculation.NewSimulator(opts)
	sim.SetLogger(logging.Printf{})
	if a.collector != nil {
		sim.Observer = a.collector
	}
	if a.noCache {
		return sim
	}

	var c cache.Cache
	if a.rt.RedisAddr != "" {
		r := cache.NewRedis(a.rt.RedisAddr)
		a.closers = append(a.closers, r)
		c = r
	} else {
		c = cache.NewMemory()
	}

	cr := cache.NewCachedRunner(sim, c, cacheTTL)
	cr.Logger = logging.Printf{}
	if a.collector != nil {
		cr.OnLookup = a.collector.CacheLookup
	}
	return cr
}

// openStore opens the ledger database.
func (a *app) openStore() (*sqlstore.Store, error) {
	store, err := sqlstore.Open(a.rt.DBDriver, a.rt.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return store, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dpgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
