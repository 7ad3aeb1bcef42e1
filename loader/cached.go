package loader

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/entityproxy/core"
)

// Cached decorates a Loader with cross-handle deduplication and record
// caching. Concurrent fetches for the same id collapse into a single inner
// call, and completed results — including not-found — are cached until
// Invalidate. This is the caching collaborator many handles of the same
// entity share, complementing the per-handle property cache.
type Cached struct {
	inner core.Loader
	group singleflight.Group

	mu      sync.RWMutex
	records map[string]core.Record
}

// NewCached wraps inner with deduplication and caching.
func NewCached(inner core.Loader) *Cached {
	return &Cached{inner: inner, records: make(map[string]core.Record)}
}

// Fetch implements core.Loader. Errors from the inner loader are shared with
// all collapsed callers but never cached, so a later fetch retries.
func (c *Cached) Fetch(ctx context.Context, id any) (core.Record, error) {
	key := cacheKey(id)

	c.mu.RLock()
	rec, ok := c.records[key]
	c.mu.RUnlock()
	if ok {
		return rec.Clone(), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		rec, err := c.inner.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.records[key] = rec
		c.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	rec, _ = v.(core.Record)
	return rec.Clone(), nil
}

// Invalidate implements core.Invalidator. It drops the cached record and
// forwards the invalidation to the inner loader when it supports one.
func (c *Cached) Invalidate(id any) {
	key := cacheKey(id)
	c.mu.Lock()
	delete(c.records, key)
	c.mu.Unlock()

	if inv, ok := c.inner.(core.Invalidator); ok {
		inv.Invalidate(id)
	}
}

// Len returns the number of cached ids, counting cached not-found results.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// cacheKey flattens an opaque id into the string key singleflight and the
// record map need. Ids of different types that print alike collide; callers
// with mixed id types should keep them distinct per loader.
func cacheKey(id any) string {
	return fmt.Sprint(id)
}
