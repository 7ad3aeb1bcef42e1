package proxy

import (
	"context"
	"fmt"

	"github.com/hupe1980/entityproxy/core"
	"github.com/hupe1980/entityproxy/promise"
)

// awaitableProbe is the conventional property name code uses to duck-type a
// value as a deferred. Resolving it short-circuits to nil so a handle is
// never mistaken for one — and so the probe never falls through to a record
// fetch of a field literally called "then".
const awaitableProbe = "then"

// Handle is a lightweight, I/O-free reference to an entity identified by an
// opaque id. Attribute access goes through Resolve, which dispatches over a
// fixed precedence chain and memoizes computed properties; the handle itself
// never fetches until a property that needs the record is first read.
type Handle struct {
	class *Class
	id    any
	ctx   *core.Context
	cache *Cache
}

// ID returns the handle's id. It is set at construction and never changes.
func (h *Handle) ID() any { return h.id }

// EntityType returns the entity type tag of the handle's class.
func (h *Handle) EntityType() string { return h.class.entityType }

// Context returns the caller-supplied dependency context.
func (h *Handle) Context() *core.Context { return h.ctx }

// Cache returns the handle's property cache for inspection.
func (h *Handle) Cache() *Cache { return h.cache }

// BoundMethod is a class method bound to its receiving handle.
type BoundMethod func(ctx context.Context, args ...any) (any, error)

// Resolve dispatches a property access over the precedence chain and returns
// a promise for its value. The dispatch itself never blocks; any fetching or
// computation happens inside the returned promise. The chain, first match
// wins:
//
//  1. the awaitable probe name ("then") resolves to nil, uncached
//  2. own instance fields: id, entityType, context, cache
//  3. class-level shared fields
//  4. methods, returned as a BoundMethod (invocation is uncached)
//  5. getters, memoized single-flight in the handle cache
//  6. fallback: project the field out of the dataValues record
//
// Which tier answers is fixed by the class declarations alone; a previously
// cached value never changes the dispatch. The fallback tier means any
// unknown name becomes a record-field lookup — a typo therefore resolves
// (asynchronously) to nil instead of erroring, which is a known rough edge
// kept for compatibility.
func (h *Handle) Resolve(ctx context.Context, name string) *promise.Promise[any] {
	switch name {
	case awaitableProbe:
		return promise.Resolved[any](nil)
	case "id":
		return promise.Resolved[any](h.id)
	case "entityType":
		return promise.Resolved[any](h.class.entityType)
	case "context":
		return promise.Resolved[any](h.ctx)
	case "cache":
		return promise.Resolved[any](h.cache)
	}

	if v, ok := h.class.fields[name]; ok {
		return promise.Resolved(v)
	}

	if m, ok := h.class.methods[name]; ok {
		return promise.Resolved[any](h.bind(m))
	}

	if g, ok := h.class.getters[name]; ok {
		return h.cache.resolve(name, func() *promise.Promise[any] {
			h.class.logger.Debug("invoking getter",
				"entity_type", h.class.entityType, "id", h.id, "property", name)
			return promise.Go(func() (any, error) {
				return g(ctx, h)
			})
		})
	}

	return promise.Then(h.Resolve(ctx, "dataValues"), func(v any) (any, error) {
		return projectField(v, name), nil
	})
}

// Get resolves the property and awaits its value. Cancelling ctx aborts the
// wait only; an in-flight getter keeps running and stays cached.
func (h *Handle) Get(ctx context.Context, name string) (any, error) {
	return h.Resolve(ctx, name).Await(ctx)
}

// Call invokes a declared method with the handle as receiver. Methods run
// immediately and are never cached; side effects are the caller's business.
func (h *Handle) Call(ctx context.Context, name string, args ...any) (any, error) {
	m, ok := h.class.methods[name]
	if !ok {
		return nil, fmt.Errorf("no method `%s` declared for proxy `%s`", name, h.class.entityType)
	}
	return m(ctx, h, args...)
}

func (h *Handle) bind(m Method) BoundMethod {
	return func(ctx context.Context, args ...any) (any, error) {
		return m(ctx, h, args...)
	}
}

// projectField extracts a named field from whatever dataValues resolved to.
// An overridden dataValues may return any shape; non-mapping results project
// to nil, mirroring a missing field.
func projectField(v any, name string) any {
	switch rec := v.(type) {
	case core.Record:
		return rec[name]
	case map[string]any:
		return rec[name]
	default:
		return nil
	}
}
