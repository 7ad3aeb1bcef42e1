// Package proxy implements the entity handle core: class definition with
// declaration-time validation, handle construction, and the fixed-precedence
// attribute resolution chain with single-flight memoization of computed
// properties.
//
// A Class is defined once from a Definition (entity type, getters, methods,
// shared fields); its handles are cheap, I/O-free references to a record by
// id. Reading a property walks own fields, shared fields, methods and getters
// in that order, and unknown names fall back to projecting the field out of
// the lazily fetched record. Getter results — including failures — are cached
// per handle as promise objects until clearCache resets the cache and
// notifies the loader.
package proxy
