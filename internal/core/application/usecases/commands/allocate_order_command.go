package commands

import (
	"errors"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrAllocateOrderCommandIsNotConstructed is returned by Validate for a zero
// AllocateOrderCommand.
var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand reserves stock for every line of a pending order,
// FEFO, all or nothing.
//
// Example:
//
//	cmd, err := NewAllocateOrderCommand("SO001")
//	if err != nil {
//	    return err
//	}
//	allocated, err := handler.Handle(ctx, cmd)
//	var short *services.InsufficientStockError
//	if errors.As(err, &short) {
//	    // short.Shortages says what is missing; nothing was reserved
//	}
type AllocateOrderCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand requires a non-blank order ID.
func NewAllocateOrderCommand(orderID string) (AllocateOrderCommand, error) {
	if strings.TrimSpace(orderID) == "" {
		return AllocateOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	return AllocateOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built by NewAllocateOrderCommand.
func (c AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}

// OrderID returns the order to allocate.
func (c AllocateOrderCommand) OrderID() string {
	return c.orderID
}
