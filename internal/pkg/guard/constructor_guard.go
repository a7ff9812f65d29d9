// Package guard holds the constructor guard used by aggregates, commands and
// queries to tell a value built by its constructor apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be built through their
// New... function. The zero value is "not constructed".
//
//	type CreateOrderCommand struct {
//	    ownerID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError (or
// ErrDefaultConstructorGuard when validationError is nil) otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
