package commands

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
)

// ReceiveLotCommandHandler adds new lots to the stock ledger.
type ReceiveLotCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewReceiveLotCommandHandler wires the handler to its unit of work factory.
func NewReceiveLotCommandHandler(uowFactory LedgerUoWFactory) ReceiveLotCommandHandler {
	return ReceiveLotCommandHandler{uowFactory: uowFactory}
}

// Handle adds the lot to the ledger. A lot ID that already exists fails with
// ports.ErrAlreadyExists.
func (h ReceiveLotCommandHandler) Handle(ctx context.Context, command ReceiveLotCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	l, err := lot.NewLot(command.LotID(), command.SKU(), command.Quantity(), command.Expiry(), command.Location())
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

	if err = uow.StockLedger().Add(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
