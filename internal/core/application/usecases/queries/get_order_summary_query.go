package queries

import (
	"errors"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrGetOrderSummaryQueryIsNotConstructed is returned by Validate for a zero
// GetOrderSummaryQuery.
var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery counts orders per status for the dashboard cards.
type GetOrderSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery takes no parameters.
func NewGetOrderSummaryQuery() GetOrderSummaryQuery {
	return GetOrderSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was built by NewGetOrderSummaryQuery.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// GetOrderSummaryQueryResponse carries one count per status, zero included,
// in status order.
type GetOrderSummaryQueryResponse struct {
	Counts []StatusCount
	Total  int
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status order.Status
	Count  int
}
