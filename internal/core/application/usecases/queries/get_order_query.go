// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read committed state through the ports and return read models
// shaped for the API and the dashboard.
package queries

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned by Validate for a zero
// GetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order with its lines and committed allocations.
//
// Example:
//
//	query, err := NewGetOrderQuery("SO001")
//	if err != nil {
//	    return err
//	}
//	detail, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery requires a non-blank order ID.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if strings.TrimSpace(orderID) == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was built by NewGetOrderQuery.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() string { return q.orderID }

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID             string
	Channel        order.Channel
	Customer       string
	Priority       order.Priority
	OrderDate      kernel.Date
	RequestedDate  kernel.Date
	Status         order.Status
	TrackingNumber string
	Lines          []OrderLineResponse
}

// OrderLineResponse is one line of an order with the lots backing it.
type OrderLineResponse struct {
	ID                string
	SKU               string
	ProductName       string
	OrderedQuantity   int
	AllocatedQuantity int
	Unit              string
	Allocations       []AllocationResponse
}

// AllocationResponse is one committed draw from a lot.
type AllocationResponse struct {
	LotID    string
	Quantity int
	Location string
	Expiry   kernel.Date
}

func newGetOrderQueryResponse(o *order.Order) GetOrderQueryResponse {
	lines := o.Lines()
	resp := GetOrderQueryResponse{
		ID:             o.ID(),
		Channel:        o.Channel(),
		Customer:       o.Customer(),
		Priority:       o.Priority(),
		OrderDate:      o.OrderDate(),
		RequestedDate:  o.RequestedDate(),
		Status:         o.Status(),
		TrackingNumber: o.TrackingNumber(),
		Lines:          make([]OrderLineResponse, 0, len(lines)),
	}

	for _, l := range lines {
		allocations := l.Allocations()
		line := OrderLineResponse{
			ID:                l.ID().String(),
			SKU:               l.SKU(),
			ProductName:       l.ProductName(),
			OrderedQuantity:   l.OrderedQuantity(),
			AllocatedQuantity: l.AllocatedQuantity(),
			Unit:              l.Unit(),
			Allocations:       make([]AllocationResponse, 0, len(allocations)),
		}
		for _, a := range allocations {
			line.Allocations = append(line.Allocations, AllocationResponse{
				LotID:    a.LotID(),
				Quantity: a.Quantity(),
				Location: a.Location(),
				Expiry:   a.Expiry(),
			})
		}
		resp.Lines = append(resp.Lines, line)
	}

	return resp
}
