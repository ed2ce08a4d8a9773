package queries

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrGetPickingListQueryIsNotConstructed is returned by Validate for a zero
// GetPickingListQuery.
var ErrGetPickingListQueryIsNotConstructed = errors.New(
	"GetPickingListQuery must be created via NewGetPickingListQuery constructor",
)

// GetPickingListQuery asks for the warehouse instructions of one order:
// which lot to pick, where and how much.
//
// Example:
//
//	query, err := NewGetPickingListQuery("SO001")
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
//	if errors.Is(err, services.ErrNotAllocated) {
//	    // the order has nothing to pick yet
//	}
type GetPickingListQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetPickingListQuery requires a non-blank order ID.
func NewGetPickingListQuery(orderID string) (GetPickingListQuery, error) {
	if strings.TrimSpace(orderID) == "" {
		return GetPickingListQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetPickingListQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was built by NewGetPickingListQuery.
func (q GetPickingListQuery) Validate() error {
	return q.guard.Validate(ErrGetPickingListQueryIsNotConstructed)
}

// OrderID returns the order to pick.
func (q GetPickingListQuery) OrderID() string { return q.orderID }
