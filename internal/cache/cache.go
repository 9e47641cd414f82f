// Package cache provides a small TTL-based memoization cache for computed
// dashboard metrics. Entries are advisory: a stale entry may return
// yesterday's numbers but never wrong ones, and every caller can bypass
// the cache. Instances are injected explicitly; there is no package-level
// singleton.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the expiry applied when none is configured.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	storedAt  time.Time
	expiresAt time.Time
}

// Cache is a concurrency-safe in-memory key/value store with per-entry
// expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time // overridable in tests
}

// New creates a Cache with the given default TTL; zero or negative falls
// back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set stores a value under the key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an explicit expiry.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}
}

// Get returns the stored value if present and not expired. Expired
// entries are removed on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has reports whether a live entry exists for the key.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// InvalidatePrefix removes every entry whose key starts with the prefix
// and returns how many were dropped.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Key builds a cache key from a base name and the query parameters that
// make the computation unique.
func Key(base string, parts ...any) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, p := range parts {
		sb.WriteByte('_')
		fmt.Fprintf(&sb, "%v", p)
	}
	return sb.String()
}
