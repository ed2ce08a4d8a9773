package commands

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrRegisterOrderCommandIsNotConstructed is returned by Validate for a zero
// RegisterOrderCommand.
var ErrRegisterOrderCommandIsNotConstructed = errors.New(
	"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
)

// RegisterOrderLine is one requested product of a new order.
type RegisterOrderLine struct {
	SKU         string
	ProductName string
	Quantity    int
	Unit        string
}

// RegisterOrderCommand brings a sales order into fulfillment as a pending
// order.
//
// Example:
//
//	cmd, err := NewRegisterOrderCommand("SO001", order.B2B, "펫마트 강남점", order.Normal,
//	    orderDate, requestedDate, []RegisterOrderLine{
//	        {SKU: "FG001", ProductName: "애니콩 펫베이커리 A", Quantity: 100, Unit: "ea"},
//	    })
type RegisterOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       string
	channel       order.Channel
	customer      string
	priority      order.Priority
	orderDate     kernel.Date
	requestedDate kernel.Date
	lines         []RegisterOrderLine

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand checks the shape of the request. Business rules
// on the values are enforced when the order is built.
func NewRegisterOrderCommand(
	orderID string,
	channel order.Channel,
	customer string,
	priority order.Priority,
	orderDate, requestedDate kernel.Date,
	lines []RegisterOrderLine,
) (RegisterOrderCommand, error) {
	cmd := RegisterOrderCommand{
		channel:       channel,
		customer:      customer,
		priority:      priority,
		orderDate:     orderDate,
		requestedDate: requestedDate,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
	); err != nil {
		return RegisterOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was built by NewRegisterOrderCommand.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// OrderID returns the new order's identifier.
func (c RegisterOrderCommand) OrderID() string { return c.orderID }

// Channel returns the sales channel.
func (c RegisterOrderCommand) Channel() order.Channel { return c.channel }

// Customer returns the ordering customer.
func (c RegisterOrderCommand) Customer() string { return c.customer }

// Priority returns the dispatch urgency, Normal when none was given.
func (c RegisterOrderCommand) Priority() order.Priority { return c.priority }

// OrderDate returns the day the order was placed.
func (c RegisterOrderCommand) OrderDate() kernel.Date { return c.orderDate }

// RequestedDate returns the requested delivery day.
func (c RegisterOrderCommand) RequestedDate() kernel.Date { return c.requestedDate }

// Lines returns a copy of the requested lines.
func (c RegisterOrderCommand) Lines() []RegisterOrderLine {
	out := make([]RegisterOrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *RegisterOrderCommand) setOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.orderID = orderID
	return nil
}

func (c *RegisterOrderCommand) setLines(lines []RegisterOrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	c.lines = append([]RegisterOrderLine(nil), lines...)
	return nil
}
