// Package core defines the boundary contracts of the entityproxy library:
// the Record field mapping, the Loader collaborator interface with its
// optional Invalidator capability, the construction Context, and the typed
// error taxonomy (ValidationError, ConstructionError, ConfigurationError,
// NotFoundError).
//
// The error message texts are part of the externally observable contract;
// callers may match on them in addition to errors.As.
package core
