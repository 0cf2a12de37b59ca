package config

import (
	"os"
	"path/filepath"
)

// Environment variables read by LoadRuntime.
const (
	EnvDBDriver    = "DPGO_DB_DRIVER"
	EnvDBDSN       = "DPGO_DB_DSN"
	EnvRedisAddr   = "DPGO_REDIS_ADDR"
	EnvMetricsFile = "DPGO_METRICS_FILE"
)

// Runtime holds the connection settings for the ledger store, the result
// cache and the metrics export.
type Runtime struct {
	DBDriver    string
	DBDSN       string
	RedisAddr   string // Empty selects the in-memory cache
	MetricsFile string // Empty disables the textfile export
}

// LoadRuntime reads runtime settings from the environment. The ledger
// defaults to a SQLite file under the user's home directory.
func LoadRuntime() Runtime {
	return LoadRuntimeFrom(os.Getenv)
}

// LoadRuntimeFrom is LoadRuntime with an explicit lookup function.
func LoadRuntimeFrom(getenv func(string) string) Runtime {
	rt := Runtime{
		DBDriver:    getenv(EnvDBDriver),
		DBDSN:       getenv(EnvDBDSN),
		RedisAddr:   getenv(EnvRedisAddr),
		MetricsFile: getenv(EnvMetricsFile),
	}
	if rt.DBDriver == "" {
		rt.DBDriver = "sqlite"
	}
	if rt.DBDSN == "" && rt.DBDriver == "sqlite" {
		rt.DBDSN = DefaultSQLitePath()
	}
	return rt
}

// DefaultSQLitePath returns ~/.dpgo/ledger.db, or a relative path when the
// home directory is unknown.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".dpgo", "ledger.db")
	}
	return filepath.Join(home, ".dpgo", "ledger.db")
}
