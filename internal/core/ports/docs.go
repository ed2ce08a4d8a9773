// Package ports defines the contracts between the fulfillment core and its
// adapters: order persistence, the stock ledger, units of work, key locks,
// tracking number generation and event publishing.
package ports

import (
	"errors"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

var (
	// ErrConcurrentModification is returned by OrderRepository.Update when the
	// stored order has moved past the version the caller loaded. It is the
	// errs version sentinel, so *errs.VersionIsInvalidError matches it.
	ErrConcurrentModification = errs.ErrVersionIsInvalid

	// ErrAlreadyExists is returned when adding an order or lot whose ID is
	// taken.
	ErrAlreadyExists = errors.New("already exists")
)
