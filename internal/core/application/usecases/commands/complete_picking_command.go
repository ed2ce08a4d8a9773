package commands

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrCompletePickingCommandIsNotConstructed is returned by Validate for a
// zero CompletePickingCommand.
var ErrCompletePickingCommandIsNotConstructed = errors.New(
	"CompletePickingCommand must be created via NewCompletePickingCommand constructor",
)

// CompletePickingCommand records that the warehouse collected every
// allocated lot of an order.
type CompletePickingCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewCompletePickingCommand requires a non-blank order ID.
func NewCompletePickingCommand(orderID string) (CompletePickingCommand, error) {
	if strings.TrimSpace(orderID) == "" {
		return CompletePickingCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	return CompletePickingCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built by NewCompletePickingCommand.
func (c CompletePickingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickingCommandIsNotConstructed)
}

// OrderID returns the order whose picking is done.
func (c CompletePickingCommand) OrderID() string {
	return c.orderID
}
