package ports

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// OrderFilter narrows List. An empty filter matches every order.
type OrderFilter struct {
	Statuses []order.Status
}

// OrderRepository defines the persistence contract for order aggregates,
// lines and committed allocations included.
type OrderRepository interface {
	// Add persists a new order. Returns ErrAlreadyExists if the ID is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the state, lines, allocations and tracking number of an
	// existing order. It succeeds only if the stored version still equals
	// aggregate.Version(), and stores version+1; otherwise it returns an error
	// matching ErrConcurrentModification.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns *errs.ObjectNotFoundError for an unknown ID.
	Get(ctx context.Context, id string) (*order.Order, error)

	// List returns matching orders sorted by order date, then ID.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// CountByStatus returns the number of orders per status. Statuses with
	// no orders may be missing from the map.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
