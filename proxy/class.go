package proxy

import (
	"maps"
	"sort"

	"github.com/hupe1980/entityproxy/core"
	"github.com/hupe1980/entityproxy/logging"
)

// Class is the immutable product of Define: the merged getter, method and
// field tables for one entity type. A Class is safe for concurrent use and
// acts as the constructor for its handles.
type Class struct {
	entityType string
	getters    map[string]Getter
	methods    map[string]Method
	fields     map[string]any
	logger     logging.Logger
}

// Option configures a Class at definition time.
type Option func(*Class)

// WithLogger sets the structured logger used by handles of this class.
// Defaults to logging.NoOpLogger.
func WithLogger(l logging.Logger) Option {
	return func(c *Class) {
		if l != nil {
			c.logger = l
		}
	}
}

// Define validates the declarations and builds a Class. Built-in getters and
// methods are merged first, then user declarations, so a user declaration
// always shadows a built-in of the same name. The caller's declaration maps
// are only inspected, never mutated.
//
// Validation runs once here, not per handle; the first invalid declaration
// (in name order) aborts with a *core.ValidationError.
func Define(def Definition, opts ...Option) (*Class, error) {
	c := &Class{
		entityType: def.EntityType,
		getters:    make(map[string]Getter, len(builtinGetters)+len(def.Getters)),
		methods:    make(map[string]Method, len(builtinMethods)+len(def.Methods)),
		fields:     make(map[string]any, len(def.Fields)),
		logger:     logging.NoOpLogger{},
	}

	maps.Copy(c.getters, builtinGetters)
	maps.Copy(c.methods, builtinMethods)

	for _, name := range sortedKeys(def.Getters) {
		g, err := validateGetter(name, def.Getters[name])
		if err != nil {
			return nil, err
		}
		c.getters[name] = g
	}
	for _, name := range sortedKeys(def.Methods) {
		m, err := validateMethod(name, def.Methods[name])
		if err != nil {
			return nil, err
		}
		c.methods[name] = m
	}
	maps.Copy(c.fields, def.Fields)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustDefine is like Define but panics on a validation failure. Intended for
// package-level class variables where an invalid declaration is a programming
// error.
func MustDefine(def Definition, opts ...Option) *Class {
	c, err := Define(def, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// EntityType returns the class's entity type tag.
func (c *Class) EntityType() string { return c.entityType }

// New constructs a handle for id. The id is required and fixed for the
// handle's lifetime; a nil id fails with *core.ConstructionError. The context
// defaults to an empty one. No I/O happens here, and the cache starts empty.
func (c *Class) New(id any, cctx *core.Context) (*Handle, error) {
	if id == nil {
		return nil, &core.ConstructionError{ID: id}
	}
	if cctx == nil {
		cctx = core.NewContext()
	}
	return &Handle{class: c, id: id, ctx: cctx, cache: newCache()}, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
