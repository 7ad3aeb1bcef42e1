package proxy

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hupe1980/entityproxy/core"
)

// Getter is the canonical shape of a computed property. It receives the
// handle explicitly as its receiver and must take nothing else; its result is
// memoized per handle until the cache is cleared.
type Getter func(ctx context.Context, h *Handle) (any, error)

// Method is the canonical shape of an operation. It receives the handle as
// its receiver plus arbitrary arguments, and is never cached.
type Method func(ctx context.Context, h *Handle, args ...any) (any, error)

// Definition declares an entity class: its type tag plus the getter, method
// and shared-field tables. Getters and Methods are declared as `any` so
// Define can report precisely why a declaration is unusable instead of
// failing an opaque compile-time assignment; the accepted shapes are Getter
// and Method above.
//
// Define never mutates the declaration maps.
type Definition struct {
	// EntityType tags handles of this class and selects their loader from
	// Context.Loaders.
	EntityType string

	// Getters maps property names to Getter declarations. A user getter with
	// a built-in's name (entityLoader, dataValues, exists) shadows the
	// built-in.
	Getters map[string]any

	// Methods maps names to Method declarations. Same shadowing rule for the
	// built-in assertExists and clearCache.
	Methods map[string]any

	// Fields holds class-level constant values shared by every handle of the
	// class, resolved ahead of methods and getters.
	Fields map[string]any
}

var (
	ctxType    = reflect.TypeOf((*context.Context)(nil)).Elem()
	handleType = reflect.TypeOf((*Handle)(nil))
)

// validateGetter checks a single getter declaration and returns it in
// canonical form. Rejections name the getter and the precise reason: not a
// function, missing the handle receiver, extra formal parameters, or a wrong
// result shape.
func validateGetter(name string, decl any) (Getter, error) {
	switch g := decl.(type) {
	case Getter:
		if g == nil {
			return nil, validationErr("getter", name, "should be a function, but got nil")
		}
		return g, nil
	case func(context.Context, *Handle) (any, error):
		if g == nil {
			return nil, validationErr("getter", name, "should be a function, but got nil")
		}
		return g, nil
	}

	t := reflect.TypeOf(decl)
	if decl == nil || t.Kind() != reflect.Func {
		return nil, validationErr("getter", name, fmt.Sprintf("should be a function, but got %T", decl))
	}
	if !acceptsReceiver(t) {
		return nil, validationErr("getter", name, "should accept the handle as its receiver")
	}
	if t.NumIn() > 2 {
		return nil, validationErr("getter", name, fmt.Sprintf("should not take any arguments, but takes %d", t.NumIn()-2))
	}
	return nil, validationErr("getter", name, fmt.Sprintf("should return (any, error), but returns %s", resultShape(t)))
}

// validateMethod checks a single method declaration and returns it in
// canonical form. Methods may take any arguments, so there is no arity check.
func validateMethod(name string, decl any) (Method, error) {
	switch m := decl.(type) {
	case Method:
		if m == nil {
			return nil, validationErr("method", name, "should be a function, but got nil")
		}
		return m, nil
	case func(context.Context, *Handle, ...any) (any, error):
		if m == nil {
			return nil, validationErr("method", name, "should be a function, but got nil")
		}
		return m, nil
	}

	t := reflect.TypeOf(decl)
	if decl == nil || t.Kind() != reflect.Func {
		return nil, validationErr("method", name, fmt.Sprintf("should be a function, but got %T", decl))
	}
	if !acceptsReceiver(t) {
		return nil, validationErr("method", name, "should accept the handle as its receiver")
	}
	return nil, validationErr("method", name, fmt.Sprintf("should be variadic over its arguments and return (any, error), but is %s", t))
}

// acceptsReceiver reports whether the function type takes (context.Context,
// *Handle) as its leading parameters. A declaration without them closes over
// its defining scope instead of observing the handle it is attached to, so it
// can never act as a dynamically bound getter or method.
func acceptsReceiver(t reflect.Type) bool {
	return t.NumIn() >= 2 && t.In(0) == ctxType && t.In(1) == handleType
}

func resultShape(t reflect.Type) string {
	if t.NumOut() == 0 {
		return "()"
	}
	s := "("
	for i := 0; i < t.NumOut(); i++ {
		if i > 0 {
			s += ", "
		}
		s += t.Out(i).String()
	}
	return s + ")"
}

func validationErr(decl, name, reason string) *core.ValidationError {
	return &core.ValidationError{Decl: decl, Name: name, Reason: reason}
}
