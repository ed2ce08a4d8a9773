package lot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

var (
	// ErrLotIsNotConstructed is returned by Validate for a Lot built outside
	// NewLot or RestoreLot.
	ErrLotIsNotConstructed = errors.New("Lot must be created via NewLot constructor")

	// ErrInsufficientLotQuantity is the sentinel behind InsufficientLotQuantityError.
	// Seeing it during allocation means the plan was computed against a stale
	// snapshot.
	ErrInsufficientLotQuantity = errors.New("insufficient lot quantity")
)

// InsufficientLotQuantityError reports a deduction larger than what the lot
// has left.
type InsufficientLotQuantityError struct {
	LotID     string
	Requested int
	Available int
}

// NewInsufficientLotQuantityError builds the error for a deduction of
// requested units from a lot that only has available left.
func NewInsufficientLotQuantityError(lotID string, requested, available int) *InsufficientLotQuantityError {
	return &InsufficientLotQuantityError{LotID: lotID, Requested: requested, Available: available}
}

// Error describes the lot and both quantities.
func (e *InsufficientLotQuantityError) Error() string {
	return fmt.Sprintf("%s: lot %s has %d, requested %d",
		ErrInsufficientLotQuantity, e.LotID, e.Available, e.Requested)
}

// Unwrap returns ErrInsufficientLotQuantity so callers can match with errors.Is.
func (e *InsufficientLotQuantityError) Unwrap() error {
	return ErrInsufficientLotQuantity
}

// Lot is a quantity of one SKU produced or received together.
//
// Invariants:
//   - ID, SKU and location are non-empty
//   - expiry is a valid calendar day
//   - QuantityAvailable is never negative
type Lot struct {
	id                string
	sku               string
	quantityAvailable int
	expiry            kernel.Date
	location          string

	guard guard.ConstructorGuard
}

// NewLot registers a freshly received lot.
//
// Example:
//
//	l, err := lot.NewLot("LOT20250909001", "FG001", 850, expiry, "P2-FG-A1")
func NewLot(id, sku string, quantity int, expiry kernel.Date, location string) (*Lot, error) {
	l := &Lot{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		l.setID(id),
		l.setSKU(sku),
		l.setQuantity(quantity),
		l.setExpiry(expiry),
		l.setLocation(location),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLot rebuilds a Lot read from storage. It applies the same checks as
// NewLot so corrupt rows surface as errors instead of broken aggregates.
func RestoreLot(id, sku string, quantityAvailable int, expiry kernel.Date, location string) (*Lot, error) {
	return NewLot(id, sku, quantityAvailable, expiry, location)
}

// Validate ensures the Lot instance was properly constructed.
func (l *Lot) Validate() error {
	if l == nil {
		return ErrLotIsNotConstructed
	}
	return l.guard.Validate(ErrLotIsNotConstructed)
}

// ID returns the lot's unique identifier.
func (l *Lot) ID() string { return l.id }

// SKU returns the stock-keeping unit stored in the lot.
func (l *Lot) SKU() string { return l.sku }

// QuantityAvailable returns the units not yet allocated. It is never
// negative.
func (l *Lot) QuantityAvailable() int { return l.quantityAvailable }

// Expiry returns the day the lot expires.
func (l *Lot) Expiry() kernel.Date { return l.expiry }

// Location returns the warehouse bin the lot is stored in.
func (l *Lot) Location() string { return l.location }

// IsDepleted reports whether nothing is left to allocate from the lot.
func (l *Lot) IsDepleted() bool {
	return l.quantityAvailable == 0
}

// DaysToExpiry counts whole days from today to the lot's expiry. Expired lots
// give a negative number.
func (l *Lot) DaysToExpiry(today kernel.Date) int {
	return l.expiry.DaysSince(today)
}

// Deduct removes quantity from the lot. It is the only mutation a lot
// supports; on error the lot is unchanged.
func (l *Lot) Deduct(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > l.quantityAvailable {
		return NewInsufficientLotQuantityError(l.id, quantity, l.quantityAvailable)
	}

	l.quantityAvailable -= quantity
	return nil
}

// Clone returns an independent copy. Stores hand out clones so callers
// cannot mutate the ledger behind its back.
func (l *Lot) Clone() *Lot {
	c := *l
	return &c
}

func (l *Lot) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("lotId")
	}
	l.id = id
	return nil
}

func (l *Lot) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	l.sku = sku
	return nil
}

func (l *Lot) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantityAvailable",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	l.quantityAvailable = quantity
	return nil
}

func (l *Lot) setExpiry(expiry kernel.Date) error {
	if err := expiry.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("expiryDate", err)
	}
	l.expiry = expiry
	return nil
}

func (l *Lot) setLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return errs.NewValueIsRequiredError("location")
	}
	l.location = location
	return nil
}
