package proxy

import (
	"sort"
	"sync"

	"github.com/hupe1980/entityproxy/promise"
)

// Cache is the per-handle property cache. Each slot holds the promise a
// getter produced, stored before any other accessor can observe the miss, so
// a computation runs at most once per property until Reset — including the
// settled-failure case, which is kept and never retried.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*promise.Promise[any]
}

func newCache() *Cache {
	return &Cache{entries: make(map[string]*promise.Promise[any])}
}

// resolve returns the cached promise for name, invoking produce under the
// lock to fill an empty slot. produce must not block: it spawns the actual
// computation and returns immediately.
func (c *Cache) resolve(name string, produce func() *promise.Promise[any]) *promise.Promise[any] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.entries[name]; ok {
		return p
	}
	p := produce()
	c.entries[name] = p
	return p
}

// Reset empties the cache wholesale. In-flight promises are deliberately
// orphaned: the slot is gone immediately, and whatever they later settle to
// is no longer observable through the handle.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*promise.Promise[any])
}

// Len returns the number of populated slots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the populated property names in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
