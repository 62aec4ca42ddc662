package store

import (
	"sync"

	"ordo-core/internal/domain/entity"
)

// MemoryCache is the process-lifetime response cache. Entries are only
// ever added or read; there is no eviction and no TTL, which is acceptable
// for the small corpus of distinct text queries per session.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entity.Result
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entity.Result)}
}

func (c *MemoryCache) Get(fingerprint string) (entity.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[fingerprint]
	return res, ok
}

func (c *MemoryCache) Set(fingerprint string, result entity.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = result
}

// Reset drops every entry. Exposed so the owning process controls the
// cache lifecycle instead of relying on ambient module state.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entity.Result)
}

// Len reports the number of cached responses.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
