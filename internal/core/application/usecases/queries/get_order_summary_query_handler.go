package queries

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// GetOrderSummaryQueryHandler counts orders per status.
type GetOrderSummaryQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderSummaryQueryHandler wires the handler to an order repository.
func NewGetOrderSummaryQueryHandler(orders ports.OrderRepository) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{orders: orders}
}

// Handle returns a count for every status, zero included, and their total.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	counts, err := h.orders.CountByStatus(ctx)
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	statuses := order.Statuses()
	resp := GetOrderSummaryQueryResponse{Counts: make([]StatusCount, 0, len(statuses))}
	for _, s := range statuses {
		resp.Counts = append(resp.Counts, StatusCount{Status: s, Count: counts[s]})
		resp.Total += counts[s]
	}
	return resp, nil
}
