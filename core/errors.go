package core

import "fmt"

// ValidationError reports an invalid getter or method declaration. It is
// raised at class-definition time and names both the offending declaration
// and the precise reason it was rejected.
type ValidationError struct {
	// Decl is the declaration kind, "getter" or "method".
	Decl string
	// Name is the declared property name.
	Name string
	// Reason explains the rejection (type observed, arity observed, or
	// receiver conformance).
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s `%s` %s", e.Decl, e.Name, e.Reason)
}

// ConstructionError reports handle construction with a nil id.
type ConstructionError struct {
	// ID is the rejected id value.
	ID any
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("Proxy should be instantiated with an id, but got: %v.", e.ID)
}

// ConfigurationError reports a missing or incapable loader collaborator. It
// surfaces lazily, on the first access of the getter or method that needs the
// absent piece; other properties on the same handle are unaffected.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string { return e.Message }

// NotFoundError reports a fetch that yielded no record for the handle's id.
type NotFoundError struct {
	EntityType string
	ID         any
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Entity `%s` with id %q does not exist.", e.EntityType, fmt.Sprint(e.ID))
}
