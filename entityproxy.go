// Package entityproxy provides a high-level façade over the proxy core and
// its collaborator abstractions (loaders, logging), enabling lazy entity
// handles with memoized attribute resolution. Most applications interact with
// this package by:
//  1. Defining a class once via Define/MustDefine (getters, methods, fields)
//  2. Registering loaders per entity type in a Context
//  3. Constructing cheap handles with Class.New and reading properties with
//     Handle.Get / Handle.Resolve
//
// The façade re-exports the common types so simple programs import a single
// package; advanced use (custom promises, cache inspection) goes through the
// subpackages directly. Handles perform no I/O themselves — all fetching is
// delegated to the Loader collaborator, which owns batching, retries and
// deadlines.
package entityproxy

import (
	"github.com/hupe1980/entityproxy/core"
	"github.com/hupe1980/entityproxy/logging"
	"github.com/hupe1980/entityproxy/proxy"
)

// Re-exported core and proxy types for single-import usage.
type (
	// Definition declares an entity class.
	Definition = proxy.Definition
	// Class is an immutable entity class; the constructor for its handles.
	Class = proxy.Class
	// Handle is a lazy, I/O-free reference to an entity by id.
	Handle = proxy.Handle
	// BoundMethod is a class method bound to its receiving handle.
	BoundMethod = proxy.BoundMethod
	// Getter is the canonical computed-property shape.
	Getter = proxy.Getter
	// Method is the canonical operation shape.
	Method = proxy.Method
	// Option configures a class at definition time.
	Option = proxy.Option

	// Context carries caller-supplied dependencies into handles.
	Context = core.Context
	// Record is the raw field mapping a loader returns.
	Record = core.Record
	// Loader is the external fetch-by-id collaborator.
	Loader = core.Loader
	// Invalidator is the optional invalidate-by-id capability of a loader.
	Invalidator = core.Invalidator
)

// Define validates the declarations and builds a Class. See proxy.Define.
func Define(def Definition, opts ...Option) (*Class, error) {
	return proxy.Define(def, opts...)
}

// MustDefine is like Define but panics on a validation failure.
func MustDefine(def Definition, opts ...Option) *Class {
	return proxy.MustDefine(def, opts...)
}

// NewContext returns an empty dependency context.
func NewContext() *Context {
	return core.NewContext()
}

// WithLogger sets the structured logger for a class's handles.
func WithLogger(l logging.Logger) Option {
	return proxy.WithLogger(l)
}
