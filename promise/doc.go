// Package promise provides a minimal future/task abstraction used to model
// deferred property values.
//
// A Promise is created around a computation (Go), or pre-settled (Resolved,
// Rejected), and is awaited with a context that bounds the wait but never the
// computation itself. Promises are the unit of memoization in the handle
// cache: caching the promise object, not its eventual value, is what gives
// concurrent accessors single-flight semantics — they all observe the same
// in-flight instance.
package promise
