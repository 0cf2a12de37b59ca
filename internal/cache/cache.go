// Package cache stores encoded simulation results keyed by a hash of the
// request.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rgehrsitz/dpgo/internal/domain"
)

// Cache is a byte-value store with optional expiry. A ttl of zero keeps the
// entry until evicted.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "dpgo:sim:"

// Key hashes everything in the request that influences a simulation:
// strategy, budget, custom order and each account's id, name, balance and
// APR in input order.
func Key(req domain.SimulationRequest) string {
	return SaltedKey(req, "")
}

// SaltedKey is Key with salt mixed in. The salt identifies runner settings
// that are not part of the request, such as the minimum payment rule.
func SaltedKey(req domain.SimulationRequest, salt string) string {
	h := xxhash.New()
	write := func(s string) {
		h.WriteString(s)
		h.WriteString("\x00")
	}

	write(salt)
	write(string(req.Strategy))
	write(req.MonthlyBudget.String())
	for _, id := range req.CustomOrder {
		write(id)
	}
	write("|")
	for _, a := range req.Accounts {
		write(a.ID)
		write(a.Name)
		write(a.InitialBalance.String())
		write(a.APR.String())
	}

	return KeyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// Memory is an in-process Cache.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value   []byte
	expires time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
