package queries

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// ListOrdersQueryHandler lists order headers with quantity totals.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewListOrdersQueryHandler wires the handler to an order repository.
func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns the matching orders, oldest order date first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	list, err := h.orders.List(ctx, ports.OrderFilter{Statuses: query.Statuses()})
	if err != nil {
		return nil, err
	}

	resp := make([]ListOrdersQueryResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, ListOrdersQueryResponse{
			ID:             o.ID(),
			Channel:        o.Channel(),
			Customer:       o.Customer(),
			Priority:       o.Priority(),
			OrderDate:      o.OrderDate(),
			RequestedDate:  o.RequestedDate(),
			Status:         o.Status(),
			TrackingNumber: o.TrackingNumber(),
			TotalOrdered:   o.TotalOrdered(),
			TotalAllocated: o.TotalAllocated(),
		})
	}
	return resp, nil
}
