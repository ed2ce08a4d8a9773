package queries

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// GetPickingListQueryHandler builds picking lists from the allocations
// stored with the order. It never reads or locks the ledger.
type GetPickingListQueryHandler struct {
	orders    ports.OrderRepository
	generator services.PickingListGenerator
}

// NewGetPickingListQueryHandler wires the handler to an order repository.
func NewGetPickingListQueryHandler(orders ports.OrderRepository) GetPickingListQueryHandler {
	return GetPickingListQueryHandler{orders: orders, generator: services.NewPickingListGenerator()}
}

// Handle builds the picking list from the order's committed allocations.
// A pending order fails with services.ErrNotAllocated.
func (h GetPickingListQueryHandler) Handle(
	ctx context.Context,
	query GetPickingListQuery,
) ([]services.PickingListEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return h.generator.Generate(o)
}
