// Package guard lets value objects, entities and commands detect that they
// were built by their constructor rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by the
// owning type's constructor:
//
//	type Lot struct {
//	    id    string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewLot(id string) (*Lot, error) {
//	    return &Lot{id: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (l *Lot) Validate() error {
//	    return l.guard.Validate(ErrLotIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
