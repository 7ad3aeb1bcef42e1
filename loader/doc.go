// Package loader provides reference implementations of the Loader
// collaborator: a volatile in-memory store for tests and demos, and a
// caching decorator that deduplicates concurrent fetches across handles.
//
// Production systems typically implement core.Loader themselves on top of
// their database or RPC layer; nothing in the handle core depends on this
// package.
package loader
