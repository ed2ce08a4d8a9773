package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned by Validate for a Line built outside
// NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one requested SKU and quantity within an order.
//
// AllocatedQuantity is derived from the committed allocations, so it can only
// grow by committing more of them and can never exceed OrderedQuantity.
type Line struct {
	id              kernel.UUID
	sku             string
	productName     string
	orderedQuantity int
	unit            string
	allocations     []Allocation

	guard guard.ConstructorGuard
}

// NewLine creates an unallocated line with a fresh identifier.
func NewLine(sku, productName string, orderedQuantity int, unit string) (*Line, error) {
	return RestoreLine(kernel.NewUUID(), sku, productName, orderedQuantity, unit, nil)
}

// RestoreLine rebuilds a line and its committed allocations from storage.
func RestoreLine(
	id kernel.UUID,
	sku, productName string,
	orderedQuantity int,
	unit string,
	allocations []Allocation,
) (*Line, error) {
	l := &Line{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		l.setID(id),
		l.setSKU(sku),
		l.setProductName(productName),
		l.setOrderedQuantity(orderedQuantity),
		l.setUnit(unit),
	); err != nil {
		return nil, err
	}
	if err := l.setAllocations(allocations); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the Line instance was properly constructed.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID { return l.id }

// SKU returns the ordered stock-keeping unit.
func (l *Line) SKU() string { return l.sku }

// ProductName returns the display name shown on picking lists.
func (l *Line) ProductName() string { return l.productName }

// OrderedQuantity returns the requested number of units.
func (l *Line) OrderedQuantity() int { return l.orderedQuantity }

// Unit returns the unit of measure, for example "ea".
func (l *Line) Unit() string { return l.unit }

// AllocatedQuantity is the sum of the committed allocations.
func (l *Line) AllocatedQuantity() int {
	return sumAllocations(l.allocations)
}

// OutstandingQuantity is what is still to be allocated.
func (l *Line) OutstandingQuantity() int {
	return l.orderedQuantity - l.AllocatedQuantity()
}

// IsFullyAllocated reports whether committed allocations cover the whole
// ordered quantity.
func (l *Line) IsFullyAllocated() bool {
	return l.AllocatedQuantity() == l.orderedQuantity
}

// Allocations returns a copy of the committed allocations in commit order.
func (l *Line) Allocations() []Allocation {
	out := make([]Allocation, len(l.allocations))
	copy(out, l.allocations)
	return out
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	l.sku = sku
	return nil
}

func (l *Line) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	l.productName = name
	return nil
}

func (l *Line) setOrderedQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderedQuantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.orderedQuantity = quantity
	return nil
}

func (l *Line) setUnit(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	l.unit = unit
	return nil
}

func (l *Line) setAllocations(allocations []Allocation) error {
	if total := sumAllocations(allocations); total > l.orderedQuantity {
		return errs.NewValueIsOutOfRangeError("allocatedQuantity", total, 0, l.orderedQuantity)
	}
	l.allocations = append([]Allocation(nil), allocations...)
	return nil
}
