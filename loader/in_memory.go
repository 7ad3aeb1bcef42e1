package loader

import (
	"context"
	"sync"

	"github.com/hupe1980/entityproxy/core"
)

// InMemory is a volatile Loader implementation storing records in a process
// local map. It is safe for concurrent access and best suited for tests or
// ephemeral demos. Each fetched record is cloned to prevent external mutation
// of internal state.
type InMemory struct {
	mu      sync.RWMutex
	records map[any]core.Record
}

// NewInMemory constructs an empty in-memory loader.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[any]core.Record)}
}

// Put stores a clone of rec under id, overwriting any previous record.
func (l *InMemory) Put(id any, rec core.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[id] = rec.Clone()
}

// Delete removes the record for id, if present.
func (l *InMemory) Delete(id any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, id)
}

// Fetch implements core.Loader, returning (nil, nil) for unknown ids.
func (l *InMemory) Fetch(_ context.Context, id any) (core.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records[id].Clone(), nil
}

// Invalidate implements core.Invalidator. The store keeps no derived state,
// so there is nothing to drop; it exists so the default clearCache method
// works against this loader.
func (l *InMemory) Invalidate(any) {}
