package promise

import (
	"context"
	"fmt"
)

// Promise is a single-assignment container for the result of an asynchronous
// computation. It settles exactly once, either with a value or an error, and
// every Await observes the same settled result.
//
// The zero value is not usable; construct promises with Go, Resolved or
// Rejected.
type Promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn in a new goroutine and returns a Promise that settles with its
// result. A panic inside fn is recovered and surfaces as a failed promise
// rather than crashing the process.
func Go[T any](fn func() (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("promise: panic during computation: %v", r)
			}
		}()
		p.val, p.err = fn()
	}()
	return p
}

// Resolved returns an already settled promise carrying v.
func Resolved[T any](v T) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{}), val: v}
	close(p.done)
	return p
}

// Rejected returns an already settled promise carrying err.
func Rejected[T any](err error) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Await blocks until the promise settles or ctx is cancelled. Cancellation
// aborts only this wait; the underlying computation keeps running and other
// awaiters are unaffected.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the promise settles.
func (p *Promise[T]) Done() <-chan struct{} { return p.done }

// Settled reports whether the promise has settled.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Then derives a promise that applies fn to p's value once it settles. If p
// settles with an error, the derived promise fails with that same error and
// fn is never invoked.
func Then[T, U any](p *Promise[T], fn func(T) (U, error)) *Promise[U] {
	return Go(func() (U, error) {
		v, err := p.Await(context.Background())
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}
