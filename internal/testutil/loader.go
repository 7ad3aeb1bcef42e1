package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/entityproxy/core"
)

// RecordingLoader is a scriptable Loader/Invalidator that records every call
// for assertions. All methods are safe for concurrent use.
type RecordingLoader struct {
	mu      sync.Mutex
	records map[any]core.Record
	err     error
	delay   time.Duration

	fetchCalls      []any
	invalidateCalls []any
}

// NewRecordingLoader constructs an empty recording loader.
func NewRecordingLoader() *RecordingLoader {
	return &RecordingLoader{records: map[any]core.Record{}}
}

// WithRecord scripts a record for id and returns the loader for chaining.
func (l *RecordingLoader) WithRecord(id any, rec core.Record) *RecordingLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[id] = rec
	return l
}

// FailWith makes every Fetch return err.
func (l *RecordingLoader) FailWith(err error) *RecordingLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
	return l
}

// WithDelay makes Fetch sleep before answering, for in-flight assertions.
func (l *RecordingLoader) WithDelay(d time.Duration) *RecordingLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.delay = d
	return l
}

// Fetch implements core.Loader. Unscripted ids fetch as not found (nil, nil).
func (l *RecordingLoader) Fetch(_ context.Context, id any) (core.Record, error) {
	l.mu.Lock()
	l.fetchCalls = append(l.fetchCalls, id)
	err := l.err
	rec := l.records[id]
	delay := l.delay
	l.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Invalidate implements core.Invalidator.
func (l *RecordingLoader) Invalidate(id any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invalidateCalls = append(l.invalidateCalls, id)
}

// FetchCalls returns the ids passed to Fetch, in order.
func (l *RecordingLoader) FetchCalls() []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]any(nil), l.fetchCalls...)
}

// InvalidateCalls returns the ids passed to Invalidate, in order.
func (l *RecordingLoader) InvalidateCalls() []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]any(nil), l.invalidateCalls...)
}

// FetchOnly wraps a loader so only the fetch operation is visible, hiding any
// Invalidate method. Useful for exercising the clearCache configuration
// error.
type FetchOnly struct {
	Inner core.Loader
}

// Fetch implements core.Loader.
func (f FetchOnly) Fetch(ctx context.Context, id any) (core.Record, error) {
	return f.Inner.Fetch(ctx, id)
}
