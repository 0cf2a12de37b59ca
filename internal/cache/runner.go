package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/domain"
)

// CachedRunner serves simulation results from a Cache, running the wrapped
// Runner on a miss. Failed simulations are not cached. Cache errors are
// logged and otherwise ignored.
type CachedRunner struct {
	Runner calculation.Runner
	Cache  Cache
	TTL    time.Duration
	Logger calculation.Logger
	// Salt separates results of runners configured differently. It defaults
	// to the runner's CacheSalt when it has one.
	Salt string
	// OnLookup, when set, is called after every cache read.
	OnLookup func(hit bool)
}

// NewCachedRunner wraps runner with c.
func NewCachedRunner(runner calculation.Runner, c Cache, ttl time.Duration) *CachedRunner {
	cr := &CachedRunner{
		Runner: runner,
		Cache:  c,
		TTL:    ttl,
		Logger: calculation.NopLogger{},
	}
	if s, ok := runner.(salter); ok {
		cr.Salt = s.CacheSalt()
	}
	return cr
}

type salter interface {
	CacheSalt() string
}

func (c *CachedRunner) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	key := SaltedKey(req, c.Salt)
	logger := c.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}

	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		logger.Warnf("cache read failed: %v", err)
	}
	if ok {
		var result domain.SimulationResult
		if err := json.Unmarshal(data, &result); err == nil {
			c.lookup(true)
			logger.Debugf("cache hit %s", key)
			return &result, nil
		}
		logger.Warnf("discarding undecodable cache entry %s", key)
	}
	c.lookup(false)

	result, err := c.Runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		logger.Warnf("cache encode failed: %v", err)
		return result, nil
	}
	if err := c.Cache.Set(ctx, key, encoded, c.TTL); err != nil {
		logger.Warnf("cache write failed: %v", err)
	}
	return result, nil
}

func (c *CachedRunner) lookup(hit bool) {
	if c.OnLookup != nil {
		c.OnLookup(hit)
	}
}
