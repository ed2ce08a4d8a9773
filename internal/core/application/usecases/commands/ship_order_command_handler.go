package commands

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// ShipOrderCommandHandler moves a picked order to shipped and returns its
// tracking number.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	tracking   ports.TrackingNumberGenerator
}

// NewShipOrderCommandHandler wires the handler to its unit of work factory
// and the source of tracking numbers.
func NewShipOrderCommandHandler(
	uowFactory OrderUoWFactory,
	tracking ports.TrackingNumberGenerator,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory, tracking: tracking}
}

// Handle checks the transition before drawing a tracking number, so orders
// in the wrong state do not consume numbers.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return "", err
	}
	if _, err = o.Status().Ship(); err != nil {
		return "", err
	}

	trackingNumber, err := h.tracking.Next(ctx)
	if err != nil {
		return "", err
	}

	if err = o.Ship(trackingNumber); err != nil {
		return "", err
	}
	if err = orders.Update(ctx, o); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return trackingNumber, nil
}
