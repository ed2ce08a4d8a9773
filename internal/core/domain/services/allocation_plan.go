package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// ErrInsufficientStock is the sentinel behind InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// PlannedPick is one proposed draw from a lot.
type PlannedPick struct {
	LotID    string
	Quantity int
	Location string
	Expiry   kernel.Date
}

// AllocationPlan is a proposal for one SKU and quantity. It has no effect
// until committed.
type AllocationPlan struct {
	SKU       string
	Requested int
	Picks     []PlannedPick
	Shortfall int
}

// Planned is the total quantity the plan draws from lots.
func (p AllocationPlan) Planned() int {
	total := 0
	for _, pick := range p.Picks {
		total += pick.Quantity
	}
	return total
}

// IsSatisfied reports whether the plan covers the whole request.
func (p AllocationPlan) IsSatisfied() bool {
	return p.Shortfall == 0
}

// Allocations converts the picks into order allocations, preserving FEFO
// order.
func (p AllocationPlan) Allocations() ([]order.Allocation, error) {
	out := make([]order.Allocation, 0, len(p.Picks))
	for _, pick := range p.Picks {
		a, err := order.NewAllocation(pick.LotID, pick.Quantity, pick.Location, pick.Expiry)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// LinePlan is the plan for one order line.
type LinePlan struct {
	LineID kernel.UUID
	AllocationPlan
}

// Shortage is the missing quantity of one order line.
type Shortage struct {
	LineID    kernel.UUID
	SKU       string
	Requested int
	Shortfall int
}

// InsufficientStockError lists every short line of an order. When it is
// returned nothing has been mutated; the caller may retry after restocking
// or reducing quantities.
type InsufficientStockError struct {
	OrderID   string
	Shortages []Shortage
}

// NewInsufficientStockError builds the error for an order with short lines.
// shortages may be empty when the missing quantity is unknown.
func NewInsufficientStockError(orderID string, shortages []Shortage) *InsufficientStockError {
	return &InsufficientStockError{OrderID: orderID, Shortages: shortages}
}

// Error lists every short SKU with its shortfall.
func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return fmt.Sprintf("%s: order %s", ErrInsufficientStock, e.OrderID)
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s short %d of %d", s.SKU, s.Shortfall, s.Requested))
	}
	return fmt.Sprintf("%s: order %s: %s", ErrInsufficientStock, e.OrderID, strings.Join(parts, ", "))
}

// Unwrap returns ErrInsufficientStock so callers can match with errors.Is.
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
