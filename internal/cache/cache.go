// Package cache holds the last fetched user profile and its fetch
// timestamp. It performs no network access; the synchronization
// controller is the only writer.
package cache

import (
	"sync"
	"time"

	"github.com/rentalert/rentalert-go/internal/types"
)

// SnapshotStore persists a single profile snapshot across restarts.
// Implementations must tolerate Load on an empty store by returning a
// nil profile.
type SnapshotStore interface {
	Load() (*types.UserProfile, time.Time, error)
	Save(p *types.UserProfile, fetchedAt time.Time) error
	Clear() error
}

// Option configures a Cache during construction.
type Option func(*Cache)

// WithSnapshotStore attaches a durable store. The cache loads the last
// snapshot on construction and writes through on Set and Clear.
func WithSnapshotStore(s SnapshotStore) Option {
	return func(c *Cache) { c.store = s }
}

// WithNow overrides the clock. Test hook.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache is the in-memory profile holder. Invariant: profile nil implies
// lastFetched is the zero time.
type Cache struct {
	mu          sync.Mutex
	profile     *types.UserProfile
	lastFetched time.Time
	now         func() time.Time
	store       SnapshotStore
}

// New builds a Cache. If a snapshot store is attached, the last
// persisted snapshot is restored; a load failure leaves the cache empty
// and is returned for the caller to log.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		return c, nil
	}
	p, fetchedAt, err := c.store.Load()
	if err != nil {
		return c, err
	}
	if p != nil {
		c.profile = p
		c.lastFetched = fetchedAt
	}
	return c, nil
}

// Set replaces the profile and stamps the fetch time. The snapshot is
// written outside the lock so readers never wait on disk I/O; the
// controller being the sole writer keeps snapshot writes ordered.
func (c *Cache) Set(p *types.UserProfile) {
	c.mu.Lock()
	c.profile = p
	c.lastFetched = c.now()
	fetchedAt := c.lastFetched
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Save(p, fetchedAt)
	}
}

// Clear drops the profile and the fetch timestamp together.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.profile = nil
	c.lastFetched = time.Time{}
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Clear()
	}
}

// Get returns the cached profile, its fetch time, and whether a
// profile is present.
func (c *Cache) Get() (*types.UserProfile, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile, c.lastFetched, c.profile != nil
}

// IsStale reports whether the entry is missing or older than
// threshold. Staleness is computed lazily; no timer runs.
func (c *Cache) IsStale(threshold time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return true
	}
	return c.now().Sub(c.lastFetched) >= threshold
}
