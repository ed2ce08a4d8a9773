package ports

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
)

// StockLedger is the source of truth for the available quantity of every
// lot. Deduct is its only mutation of existing lots.
//
// Lots returned by the ledger are copies; changing them has no effect on
// the ledger.
type StockLedger interface {
	// LotsFor returns every lot of the SKU, depleted ones included, in no
	// particular order. Inside a unit of work the returned quantities
	// reflect deductions already made in it, and implementations may lock
	// the rows until the unit of work ends.
	LotsFor(ctx context.Context, sku string) ([]*lot.Lot, error)

	// Deduct decrements a lot. It fails with an error matching
	// lot.ErrInsufficientLotQuantity when quantity exceeds what is
	// available and never leaves a lot negative. The new quantity is
	// visible to the next read in the same unit of work.
	Deduct(ctx context.Context, lotID string, quantity int) error

	// Add registers a received lot. Returns ErrAlreadyExists if the ID is taken.
	Add(ctx context.Context, l *lot.Lot) error

	// Get returns *errs.ObjectNotFoundError for an unknown lot.
	Get(ctx context.Context, lotID string) (*lot.Lot, error)

	// ListAvailable returns every lot with quantity left, without locking.
	ListAvailable(ctx context.Context) ([]*lot.Lot, error)
}
