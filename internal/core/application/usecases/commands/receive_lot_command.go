package commands

import (
	"errors"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// ErrReceiveLotCommandIsNotConstructed is returned by Validate for a zero
// ReceiveLotCommand.
var ErrReceiveLotCommandIsNotConstructed = errors.New(
	"ReceiveLotCommand must be created via NewReceiveLotCommand constructor",
)

// ReceiveLotCommand registers a finished-goods lot coming out of production
// or receiving. Field rules are the lot's own; the command only carries them.
type ReceiveLotCommand struct {
	lotID    string
	sku      string
	quantity int
	expiry   kernel.Date
	location string

	guard guard.ConstructorGuard
}

// NewReceiveLotCommand carries the lot's fields unchecked; lot.NewLot
// validates them when the handler runs.
func NewReceiveLotCommand(lotID, sku string, quantity int, expiry kernel.Date, location string) ReceiveLotCommand {
	return ReceiveLotCommand{
		lotID:    lotID,
		sku:      sku,
		quantity: quantity,
		expiry:   expiry,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was built by NewReceiveLotCommand.
func (c ReceiveLotCommand) Validate() error {
	return c.guard.Validate(ErrReceiveLotCommandIsNotConstructed)
}

// LotID returns the new lot's identifier.
func (c ReceiveLotCommand) LotID() string { return c.lotID }

// SKU returns the stock-keeping unit received.
func (c ReceiveLotCommand) SKU() string { return c.sku }

// Quantity returns the units received.
func (c ReceiveLotCommand) Quantity() int { return c.quantity }

// Expiry returns the lot's expiry day.
func (c ReceiveLotCommand) Expiry() kernel.Date { return c.expiry }

// Location returns the bin the lot is put away in.
func (c ReceiveLotCommand) Location() string { return c.location }
