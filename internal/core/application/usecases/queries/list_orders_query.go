package queries

import (
	"errors"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned by Validate for a zero
// ListOrdersQuery.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, optionally restricted to some statuses.
// Results come oldest order date first.
//
// Example:
//
//	query, err := NewListOrdersQuery(order.Pending, order.Allocated)
//	if err != nil {
//	    return err
//	}
//	open, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery with no statuses lists every order.
func NewListOrdersQuery(statuses ...order.Status) (ListOrdersQuery, error) {
	for i, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("statuses[%d]", i), err)
		}
	}
	return ListOrdersQuery{
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was built by NewListOrdersQuery.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Statuses returns a copy of the status filter; empty means every status.
func (q ListOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

// ListOrdersQueryResponse is a list row: the order header with quantity
// totals.
type ListOrdersQueryResponse struct {
	ID             string
	Channel        order.Channel
	Customer       string
	Priority       order.Priority
	OrderDate      kernel.Date
	RequestedDate  kernel.Date
	Status         order.Status
	TrackingNumber string
	TotalOrdered   int
	TotalAllocated int
}
