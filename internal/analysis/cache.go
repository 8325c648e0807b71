package analysis

import (
	"sync"
	"time"
)

// DefaultTTL is how long a computed result is served from the cache.
const DefaultTTL = time.Minute

type entry struct {
	result    Result
	expiresAt time.Time
}

// Cache holds one Result per symbol until its expiry instant.
// Expired entries stay in place until the next Set for the same symbol.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type CacheOption func(*Cache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime given to new entries.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the stored result while now is strictly before its expiry.
func (c *Cache) Get(symbol string) (Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[symbol]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return Result{}, false
	}
	return e.result, true
}

// Set stores r under symbol, replacing any previous entry.
func (c *Cache) Set(symbol string, r Result) {
	expiresAt := c.now().Add(c.ttl)

	c.mu.Lock()
	c.entries[symbol] = entry{result: r, expiresAt: expiresAt}
	c.mu.Unlock()
}

func (c *Cache) Invalidate(symbol string) {
	c.mu.Lock()
	delete(c.entries, symbol)
	c.mu.Unlock()
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len counts stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
