package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an operation that is not legal from the
// order's current status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError builds the error for a move from one status to
// another that the transition table forbids.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Error names both statuses.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap returns ErrInvalidTransition so callers can match with errors.Is.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Allocated ──> Picked ──> Shipped
//
// Every arrow is the only way out of its source state. Shipped is terminal
// within the fulfillment engine; delivery tracking happens elsewhere.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a registered order. No stock is
	// reserved for it yet.
	Pending

	// Allocated means every line has lots committed to it in the ledger.
	Allocated

	// Picked means the warehouse has collected every allocated lot.
	Picked

	// Shipped means the order left the plant with a tracking number.
	Shipped
)

// transitions is the complete transition table.
var transitions = map[Status]Status{
	Pending:   Allocated,
	Allocated: Picked,
	Picked:    Shipped,
}

var statusNames = map[Status]string{
	Pending:   "pending",
	Allocated: "allocated",
	Picked:    "picked",
	Shipped:   "shipped",
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Allocated, Picked, Shipped}
}

// ParseStatus converts the persisted or wire name of a status, case
// insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of Pending, Allocated, Picked
// or Shipped. Statuses read from storage or requests go through it.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, or "unknown". It is safe
// to call on any value.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// CanTransitionTo reports whether the transition table has an arrow s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	next, ok := transitions[s]
	return ok && next == to
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	_, ok := transitions[s]
	return !ok
}

// Allocate transitions Pending to Allocated.
func (s Status) Allocate() (Status, error) {
	return s.transitionTo(Allocated)
}

// CompletePicking transitions Allocated to Picked.
func (s Status) CompletePicking() (Status, error) {
	return s.transitionTo(Picked)
}

// Ship transitions Picked to Shipped.
func (s Status) Ship() (Status, error) {
	return s.transitionTo(Shipped)
}

func (s Status) transitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return s, NewInvalidTransitionError(s, to)
	}
	return to, nil
}
