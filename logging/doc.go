// Package logging provides a minimal logging interface and adapters for
// entityproxy.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used around property resolution and cache invalidation. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	cls, err := proxy.Define(def, proxy.WithLogger(logging.NewDefaultSlogLogger()))
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
