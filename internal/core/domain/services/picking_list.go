package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// ErrNotAllocated is returned when a picking list is requested for an order
// that has no committed allocation yet.
var ErrNotAllocated = errors.New("order is not allocated")

// PickingListEntry tells the warehouse to take Quantity units of SKU from
// LotID at Location.
type PickingListEntry struct {
	LineID      kernel.UUID
	SKU         string
	ProductName string
	Quantity    int
	Unit        string
	LotID       string
	Location    string
	Expiry      kernel.Date
}

// PickingListGenerator projects the committed allocations of an order into
// pick instructions. Entries are grouped by line in line order; within a
// line, lots come in FEFO order. It only reads the order.
type PickingListGenerator struct{}

// NewPickingListGenerator returns a stateless generator.
func NewPickingListGenerator() PickingListGenerator {
	return PickingListGenerator{}
}

// Generate builds the picking list of an allocated, picked or shipped order.
// Calling it twice on the same order yields the same entries.
//
// Parameters:
//   - o: the order to pick
//
// Returns:
//   - one entry per committed allocation
//   - ErrNotAllocated if the order is still pending
func (g PickingListGenerator) Generate(o *order.Order) ([]PickingListEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() == order.Pending {
		return nil, fmt.Errorf("%w: order %s is %s", ErrNotAllocated, o.ID(), o.Status())
	}

	var entries []PickingListEntry
	for _, line := range o.Lines() {
		allocations := line.Allocations()
		sort.SliceStable(allocations, func(i, j int) bool {
			if c := allocations[i].Expiry().Compare(allocations[j].Expiry()); c != 0 {
				return c < 0
			}
			return allocations[i].LotID() < allocations[j].LotID()
		})

		for _, a := range allocations {
			entries = append(entries, PickingListEntry{
				LineID:      line.ID(),
				SKU:         line.SKU(),
				ProductName: line.ProductName(),
				Quantity:    a.Quantity(),
				Unit:        line.Unit(),
				LotID:       a.LotID(),
				Location:    a.Location(),
				Expiry:      a.Expiry(),
			})
		}
	}
	return entries, nil
}
