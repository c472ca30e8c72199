package cms

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// cache holds decoded responses for the revalidation window. Values are
// treated as immutable; readers clone before handing them out.
type cache struct {
	mu    sync.RWMutex
	now   func() time.Time
	items map[string]cacheEntry
}

func newCache(now func() time.Time) *cache {
	return &cache{now: now, items: map[string]cacheEntry{}}
}

func (c *cache) get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *cache) put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{value: value, expires: c.now().Add(ttl)}
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]cacheEntry{}
}
