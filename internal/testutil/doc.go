// Package testutil provides shared test fixtures: a scriptable recording
// loader and a capability-hiding wrapper. Test-only; not part of the public
// API.
package testutil
