package commands_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) LotsFor(ctx context.Context, sku string) ([]*lot.Lot, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lot.Lot), args.Error(1)
}

func (m *MockStockLedger) Deduct(ctx context.Context, lotID string, quantity int) error {
	args := m.Called(ctx, lotID, quantity)
	return args.Error(0)
}

func (m *MockStockLedger) Add(ctx context.Context, l *lot.Lot) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStockLedger) Get(ctx context.Context, lotID string) (*lot.Lot, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lot.Lot), args.Error(1)
}

func (m *MockStockLedger) ListAvailable(ctx context.Context) ([]*lot.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lot.Lot), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLedgerUoW struct{ mock.Mock }

func (m *MockLedgerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockTrackingNumberGenerator struct{ mock.Mock }

func (m *MockTrackingNumberGenerator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// uowFactoryFunc adapts a ports.UnitOfWork constructor to commands.UoWFactory.
type uowFactoryFunc func() ports.UnitOfWork

func (f uowFactoryFunc) Create() commands.UoW { return f() }

var (
	testOrderDate     = kernel.NewDate(2025, time.September, 10)
	testRequestedDate = kernel.NewDate(2025, time.September, 12)
)

func mustLot(t *testing.T, id, sku string, quantity int, expiry kernel.Date) *lot.Lot {
	t.Helper()
	l, err := lot.NewLot(id, sku, quantity, expiry, "P2-"+id)
	require.NoError(t, err)
	return l
}

func mustLine(t *testing.T, sku string, quantity int) *order.Line {
	t.Helper()
	line, err := order.NewLine(sku, "product "+sku, quantity, "ea")
	require.NoError(t, err)
	return line
}

func mustOrder(t *testing.T, id string, lines ...*order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, order.B2B, "펫마트 강남점", order.Normal, testOrderDate, testRequestedDate, lines)
	require.NoError(t, err)
	return o
}

// allocatedOrder returns an order whose lines are fully covered by one
// allocation each.
func allocatedOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	o := mustOrder(t, id, mustLine(t, "FG001", 100), mustLine(t, "FG002", 50))
	allocations := make(map[kernel.UUID][]order.Allocation)
	for i, line := range o.Lines() {
		a, err := order.NewAllocation(
			fmt.Sprintf("LOT%03d", i+1),
			line.OrderedQuantity(),
			"P2-FG-A1",
			kernel.NewDate(2025, time.October, 9),
		)
		require.NoError(t, err)
		allocations[line.ID()] = []order.Allocation{a}
	}
	require.NoError(t, o.Allocate(allocations))
	o.ClearDomainEvents()
	return o
}

func pickedOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	o := allocatedOrder(t, id)
	require.NoError(t, o.CompletePicking())
	o.ClearDomainEvents()
	return o
}
