package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

type demoLot struct {
	id       string
	sku      string
	quantity int
	expiry   kernel.Date
	location string
}

var demoLots = []demoLot{
	{"LOT20250909001", "FG001", 850, kernel.NewDate(2025, time.October, 9), "P2-FG-A1"},
	{"LOT20250910002", "FG001", 320, kernel.NewDate(2025, time.October, 10), "P2-FG-A2"},
	{"LOT20250911003", "FG001", 150, kernel.NewDate(2025, time.October, 11), "P2-FG-A3"},
	{"LOT20250908004", "FG002", 500, kernel.NewDate(2025, time.October, 8), "P2-FG-B1"},
	{"LOT20250911005", "FG002", 200, kernel.NewDate(2025, time.October, 11), "P2-FG-B2"},
}

// SeedDemo loads the demo warehouse: five finished-goods lots and one
// pending B2B order. Records that already exist are left alone, so it can
// run on every start.
func (c *CompositionRoot) SeedDemo(ctx context.Context) error {
	receive := c.CreateReceiveLotCommandHandler()
	for _, l := range demoLots {
		cmd := commands.NewReceiveLotCommand(l.id, l.sku, l.quantity, l.expiry, l.location)
		if err := receive.Handle(ctx, cmd); err != nil && !errors.Is(err, ports.ErrAlreadyExists) {
			return fmt.Errorf("failed to seed lot %s: %w", l.id, err)
		}
	}

	cmd, err := commands.NewRegisterOrderCommand(
		"SO001",
		order.B2B,
		"펫마트 강남점",
		order.Normal,
		kernel.NewDate(2025, time.September, 10),
		kernel.NewDate(2025, time.September, 12),
		[]commands.RegisterOrderLine{
			{SKU: "FG001", ProductName: "애니콩 펫베이커리 A", Quantity: 100, Unit: "ea"},
			{SKU: "FG002", ProductName: "애니콩 펫베이커리 B", Quantity: 50, Unit: "ea"},
		},
	)
	if err != nil {
		return err
	}
	if err = c.CreateRegisterOrderCommandHandler().Handle(ctx, cmd); err != nil && !errors.Is(err, ports.ErrAlreadyExists) {
		return fmt.Errorf("failed to seed order SO001: %w", err)
	}

	c.logger.InfoContext(ctx, "Demo data loaded", "lots", len(demoLots), "orders", 1)
	return nil
}
