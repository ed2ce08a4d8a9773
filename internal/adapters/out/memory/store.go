// Package memory provides the in-process adapters of the fulfillment core:
// a transactional store for lots and orders, a keyed mutex locker and a
// tracking number generator. It backs the service when no database is
// configured and serves as the reference implementation in tests.
package memory

import (
	"sync"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// Store holds the committed state. Everything that leaves or enters it is
// copied, so callers never share memory with it.
type Store struct {
	mu     sync.RWMutex
	lots   map[string]*lot.Lot
	orders map[string]*order.Order
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		lots:   make(map[string]*lot.Lot),
		orders: make(map[string]*order.Order),
	}
}

// cloneOrder copies an order through RestoreOrder. The copy carries the
// given version and no recorded events.
func cloneOrder(o *order.Order, version int) (*order.Order, error) {
	src := o.Lines()
	lines := make([]*order.Line, 0, len(src))
	for _, l := range src {
		line, err := order.RestoreLine(l.ID(), l.SKU(), l.ProductName(), l.OrderedQuantity(), l.Unit(), l.Allocations())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		o.ID(),
		o.Channel(),
		o.Customer(),
		o.Priority(),
		o.OrderDate(),
		o.RequestedDate(),
		o.Status(),
		o.TrackingNumber(),
		version,
		lines,
	)
}
