package geoip

import (
	"context"
	"sync"
	"time"
)

// Cache is the get/set-with-TTL abstraction behind the resolver. The
// interface is deliberately error-free: cache degradation must never affect
// resolution, so implementations log their own failures and report a miss.
type Cache interface {
	Get(ctx context.Context, ip string) (*GeoLocation, bool)
	Set(ctx context.Context, ip string, loc *GeoLocation, ttl time.Duration)
}

type memoryEntry struct {
	loc       GeoLocation
	expiresAt time.Time
}

// MemoryCache is a process-local Cache implementation. Entries expire lazily
// on read. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get returns a copy of the cached location if present and not expired.
func (c *MemoryCache) Get(_ context.Context, ip string) (*GeoLocation, bool) {
	c.mu.RLock()
	entry, ok := c.entries[ip]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := c.entries[ip]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, ip)
		}
		c.mu.Unlock()
		return nil, false
	}

	loc := entry.loc
	return &loc, true
}

// Set stores a copy of loc under ip for the given TTL. Nil locations are
// ignored; negative lookups are not cached so transient failures retry.
func (c *MemoryCache) Set(_ context.Context, ip string, loc *GeoLocation, ttl time.Duration) {
	if loc == nil {
		return
	}

	c.mu.Lock()
	c.entries[ip] = memoryEntry{loc: *loc, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Len reports the number of entries currently held, including any that have
// expired but not yet been evicted.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
