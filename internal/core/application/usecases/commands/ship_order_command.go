package commands

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrShipOrderCommandIsNotConstructed is returned by Validate for a zero
// ShipOrderCommand.
var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand dispatches a picked order under a new tracking number.
type ShipOrderCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand requires a non-blank order ID.
func NewShipOrderCommand(orderID string) (ShipOrderCommand, error) {
	if strings.TrimSpace(orderID) == "" {
		return ShipOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	return ShipOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built by NewShipOrderCommand.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the order to ship.
func (c ShipOrderCommand) OrderID() string {
	return c.orderID
}
