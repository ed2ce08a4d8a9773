package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// RegisterOrderCommandHandler creates pending orders.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRegisterOrderCommandHandler wires the handler to its unit of work
// factory.
func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{uowFactory: uowFactory}
}

// Handle builds the order aggregate and stores it. Domain validation errors
// and ports.ErrAlreadyExists are returned as is.
func (h RegisterOrderCommandHandler) Handle(ctx context.Context, command RegisterOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	o, err := buildOrder(command)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildOrder(command RegisterOrderCommand) (*order.Order, error) {
	specs := command.Lines()
	lines := make([]*order.Line, 0, len(specs))
	var lineErrs []error
	for i, spec := range specs {
		line, err := order.NewLine(spec.SKU, spec.ProductName, spec.Quantity, spec.Unit)
		if err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err))
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	return order.NewOrder(
		command.OrderID(),
		command.Channel(),
		command.Customer(),
		command.Priority(),
		command.OrderDate(),
		command.RequestedDate(),
		lines,
	)
}
