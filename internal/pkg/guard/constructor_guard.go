// Package guard provides the constructor-guard pattern used by domain objects
// to ensure they are only created through their designated constructors.
// A zero-value struct fails guard validation, which prevents accidental use of
// uninitialized aggregates, commands, and queries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a zero-value guard
// is validated and no specific error was provided by the caller.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor. Embed one in a struct and set it with NewConstructorGuard
// inside the constructor; Validate then distinguishes constructed instances
// from zero values.
//
// ConstructorGuard is immutable and safe for concurrent use.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
