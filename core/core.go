package core

import (
	"context"
	"maps"
)

// Record is the raw field mapping a loader returns for an id. A nil Record
// means the entity does not exist; an empty non-nil Record is an existing
// entity that happens to carry no fields.
type Record map[string]any

// Clone returns a shallow copy of the record, or nil for a nil record.
// Loaders hand out clones so callers cannot mutate shared state.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// Loader is the external collaborator that fetches records by id. Handles
// never fetch on their own; all I/O happens behind this interface. Batching,
// deduplication, retries and deadlines are the loader's concern.
//
// Fetch returns (nil, nil) when no entity exists for the id.
type Loader interface {
	Fetch(ctx context.Context, id any) (Record, error)
}

// Invalidator is the optional invalidation capability of a loader. A loader
// that caches records should implement it so handle cache clearing can
// propagate; loaders without it cause the default clearCache method to fail
// with a ConfigurationError.
type Invalidator interface {
	Invalidate(id any)
}

// Context carries caller-supplied dependencies into a handle. Loaders holds
// the conventional entityType -> loader mapping consulted by the default
// entityLoader getter; Values is an open bag for anything user getters and
// methods need. The context reference is fixed at construction and its
// contents may be shared across handles.
type Context struct {
	Loaders map[string]Loader
	Values  map[string]any
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{Values: map[string]any{}}
}

// WithLoader registers a loader for an entity type and returns the context
// for chaining.
func (c *Context) WithLoader(entityType string, l Loader) *Context {
	if c.Loaders == nil {
		c.Loaders = map[string]Loader{}
	}
	c.Loaders[entityType] = l
	return c
}

// WithValue stores an arbitrary dependency under key and returns the context
// for chaining.
func (c *Context) WithValue(key string, v any) *Context {
	if c.Values == nil {
		c.Values = map[string]any{}
	}
	c.Values[key] = v
	return c
}

// Value returns the dependency stored under key, if any.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.Values[key]
	return v, ok
}
