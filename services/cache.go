package services

import "sync"

// ResourceCache is the process-wide read-through cache keyed by resource
// name ("settings", "user:<id>"). Entries are populated on first fetch and
// evicted by key after a mutation known to affect them; there is no
// cross-key invalidation and no TTL.
type ResourceCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewResourceCache() *ResourceCache {
	return &ResourceCache{entries: make(map[string]any)}
}

func (c *ResourceCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *ResourceCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *ResourceCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
