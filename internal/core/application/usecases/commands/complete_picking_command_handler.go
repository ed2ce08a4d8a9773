package commands

import "context"

// CompletePickingCommandHandler moves an allocated order to picked. It does
// not touch the ledger.
type CompletePickingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompletePickingCommandHandler wires the handler to its unit of work
// factory.
func NewCompletePickingCommandHandler(uowFactory OrderUoWFactory) CompletePickingCommandHandler {
	return CompletePickingCommandHandler{uowFactory: uowFactory}
}

// Handle returns order.ErrIncompleteAllocation or *order.InvalidTransitionError
// when the order is not ready, leaving it unchanged.
func (h CompletePickingCommandHandler) Handle(ctx context.Context, command CompletePickingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.CompletePicking(); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
