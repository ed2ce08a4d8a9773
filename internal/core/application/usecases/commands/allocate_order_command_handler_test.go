package commands_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/adapters/out/memory"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allocationFixture struct {
	factory *memory.UnitOfWorkFactory
	handler commands.AllocateOrderCommandHandler
}

func newAllocationFixture(t *testing.T, lots ...*lot.Lot) allocationFixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, logger)
	ledger := factory.Create().StockLedger()
	for _, l := range lots {
		require.NoError(t, ledger.Add(t.Context(), l))
	}
	return allocationFixture{
		factory: factory,
		handler: commands.NewAllocateOrderCommandHandler(
			uowFactoryFunc(factory.Create), memory.NewKeyLocker(), 3, logger,
		),
	}
}

func (f allocationFixture) addOrder(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, f.factory.Create().OrderRepository().Add(t.Context(), o))
}

func (f allocationFixture) allocate(ctx context.Context, orderID string) (commands.AllocatedOrder, error) {
	cmd, err := commands.NewAllocateOrderCommand(orderID)
	if err != nil {
		return commands.AllocatedOrder{}, err
	}
	return f.handler.Handle(ctx, cmd)
}

func (f allocationFixture) available(t *testing.T, lotID string) int {
	t.Helper()
	l, err := f.factory.Create().StockLedger().Get(t.Context(), lotID)
	require.NoError(t, err)
	return l.QuantityAvailable()
}

func (f allocationFixture) order(t *testing.T, id string) *order.Order {
	t.Helper()
	o, err := f.factory.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func TestAllocateOrderCommandHandler_Handle(t *testing.T) {
	oct8 := kernel.NewDate(2025, time.October, 8)
	oct9 := kernel.NewDate(2025, time.October, 9)
	oct10 := kernel.NewDate(2025, time.October, 10)

	t.Run("should allocate earliest expiring lots first and deduct them", func(t *testing.T) {
		f := newAllocationFixture(t,
			mustLot(t, "L2", "FG001", 320, oct10),
			mustLot(t, "L1", "FG001", 100, oct9),
		)
		f.addOrder(t, mustOrder(t, "SO001", mustLine(t, "FG001", 120)))

		result, err := f.allocate(t.Context(), "SO001")

		require.NoError(t, err)
		assert.Equal(t, order.Allocated, result.Status)
		require.Len(t, result.Lines, 1)
		picks := result.Lines[0].Picks
		require.Len(t, picks, 2)
		assert.Equal(t, services.PlannedPick{LotID: "L1", Quantity: 100, Location: "P2-L1", Expiry: oct9}, picks[0])
		assert.Equal(t, services.PlannedPick{LotID: "L2", Quantity: 20, Location: "P2-L2", Expiry: oct10}, picks[1])

		assert.Equal(t, 0, f.available(t, "L1"))
		assert.Equal(t, 300, f.available(t, "L2"))
		stored := f.order(t, "SO001")
		assert.Equal(t, order.Allocated, stored.Status())
		assert.Equal(t, 120, stored.TotalAllocated())
	})

	t.Run("should leave everything untouched when one line is short", func(t *testing.T) {
		f := newAllocationFixture(t,
			mustLot(t, "L1", "FG001", 500, oct9),
			mustLot(t, "L4", "FG002", 30, oct8),
		)
		f.addOrder(t, mustOrder(t, "SO001", mustLine(t, "FG001", 100), mustLine(t, "FG002", 50)))

		_, err := f.allocate(t.Context(), "SO001")

		var short *services.InsufficientStockError
		require.True(t, errors.As(err, &short))
		assert.Equal(t, "SO001", short.OrderID)
		require.Len(t, short.Shortages, 1)
		assert.Equal(t, "FG002", short.Shortages[0].SKU)
		assert.Equal(t, 20, short.Shortages[0].Shortfall)

		assert.Equal(t, 500, f.available(t, "L1"))
		assert.Equal(t, 30, f.available(t, "L4"))
		stored := f.order(t, "SO001")
		assert.Equal(t, order.Pending, stored.Status())
		assert.Zero(t, stored.TotalAllocated())
	})

	t.Run("should share a lot across two lines of the same sku", func(t *testing.T) {
		f := newAllocationFixture(t,
			mustLot(t, "L1", "FG001", 100, oct9),
			mustLot(t, "L2", "FG001", 100, oct10),
		)
		f.addOrder(t, mustOrder(t, "SO001", mustLine(t, "FG001", 80), mustLine(t, "FG001", 60)))

		_, err := f.allocate(t.Context(), "SO001")

		require.NoError(t, err)
		assert.Equal(t, 0, f.available(t, "L1"))
		assert.Equal(t, 60, f.available(t, "L2"))
	})

	t.Run("should reject an order that is already allocated", func(t *testing.T) {
		f := newAllocationFixture(t, mustLot(t, "L1", "FG001", 500, oct9))
		f.addOrder(t, mustOrder(t, "SO001", mustLine(t, "FG001", 100)))
		_, err := f.allocate(t.Context(), "SO001")
		require.NoError(t, err)

		_, err = f.allocate(t.Context(), "SO001")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, 400, f.available(t, "L1"))
	})

	t.Run("should report an unknown order", func(t *testing.T) {
		f := newAllocationFixture(t)

		_, err := f.allocate(t.Context(), "SO404")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		f := newAllocationFixture(t)

		_, err := f.handler.Handle(t.Context(), commands.AllocateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrAllocateOrderCommandIsNotConstructed)
	})
}

func TestAllocateOrderCommandHandler_Handle_Concurrent(t *testing.T) {
	oct9 := kernel.NewDate(2025, time.October, 9)
	oct10 := kernel.NewDate(2025, time.October, 10)
	f := newAllocationFixture(t,
		mustLot(t, "L1", "FG001", 60, oct9),
		mustLot(t, "L2", "FG001", 40, oct10),
	)

	const orders = 10
	for i := 0; i < orders; i++ {
		f.addOrder(t, mustOrder(t, fmt.Sprintf("SO%03d", i), mustLine(t, "FG001", 30)))
	}

	var allocated, short atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.allocate(context.Background(), id)
			switch {
			case err == nil:
				allocated.Add(1)
			case errors.Is(err, services.ErrInsufficientStock):
				short.Add(1)
			default:
				t.Errorf("unexpected error for %s: %v", id, err)
			}
		}(fmt.Sprintf("SO%03d", i))
	}
	wg.Wait()

	assert.Equal(t, int32(3), allocated.Load())
	assert.Equal(t, int32(orders-3), short.Load())
	assert.Equal(t, 10, f.available(t, "L1")+f.available(t, "L2"))

	total := 0
	list, err := f.factory.Create().OrderRepository().List(t.Context(), ports.OrderFilter{
		Statuses: []order.Status{order.Allocated},
	})
	require.NoError(t, err)
	for _, o := range list {
		total += o.TotalAllocated()
	}
	assert.Equal(t, 90, total)
}

// racingUoW fails its first commits as if another writer had drained a lot.
type racingUoW struct {
	ports.UnitOfWork
	fail   bool
	onFail func(ctx context.Context)
}

func (u *racingUoW) Commit(ctx context.Context) error {
	if u.fail {
		_ = u.UnitOfWork.Rollback(ctx)
		if u.onFail != nil {
			u.onFail(ctx)
		}
		return lot.NewInsufficientLotQuantityError("L1", 100, 0)
	}
	return u.UnitOfWork.Commit(ctx)
}

func TestAllocateOrderCommandHandler_Handle_Retries(t *testing.T) {
	oct9 := kernel.NewDate(2025, time.October, 9)

	setup := func(
		t *testing.T,
		failures int,
		onFail func(ctx context.Context),
	) (allocationFixture, commands.AllocateOrderCommandHandler, *atomic.Int32) {
		t.Helper()
		f := newAllocationFixture(t, mustLot(t, "L1", "FG001", 500, oct9))
		f.addOrder(t, mustOrder(t, "SO001", mustLine(t, "FG001", 100)))

		var created atomic.Int32
		factory := uowFactoryFunc(func() ports.UnitOfWork {
			n := created.Add(1)
			return &racingUoW{UnitOfWork: f.factory.Create(), fail: int(n) <= failures, onFail: onFail}
		})
		handler := commands.NewAllocateOrderCommandHandler(factory, memory.NewKeyLocker(), 3, slog.New(slog.DiscardHandler))
		return f, handler, &created
	}

	t.Run("should retry a lost race and succeed", func(t *testing.T) {
		f, handler, created := setup(t, 2, nil)
		cmd, err := commands.NewAllocateOrderCommand("SO001")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Allocated, result.Status)
		assert.Equal(t, int32(3), created.Load())
		assert.Equal(t, 400, f.available(t, "L1"))
	})

	t.Run("should give up as insufficient stock after the last attempt", func(t *testing.T) {
		f, handler, created := setup(t, 3, nil)
		cmd, err := commands.NewAllocateOrderCommand("SO001")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		var short *services.InsufficientStockError
		require.True(t, errors.As(err, &short))
		assert.ErrorIs(t, err, lot.ErrInsufficientLotQuantity)
		require.Len(t, short.Shortages, 1)
		assert.Equal(t, "FG001", short.Shortages[0].SKU)
		assert.Equal(t, 100, short.Shortages[0].Requested)
		assert.Equal(t, 100, short.Shortages[0].Shortfall)
		assert.Equal(t, int32(4), created.Load(), "three attempts and one read-only re-plan")
		assert.Equal(t, 500, f.available(t, "L1"))
		assert.Equal(t, order.Pending, f.order(t, "SO001").Status())
	})

	t.Run("should report the shortfall left by the winning writer", func(t *testing.T) {
		var (
			f     allocationFixture
			races atomic.Int32
		)
		drain := func(ctx context.Context) {
			if races.Add(1) != 3 {
				return
			}
			uow := f.factory.Create()
			require.NoError(t, uow.Begin(ctx))
			require.NoError(t, uow.StockLedger().Deduct(ctx, "L1", 460))
			require.NoError(t, uow.Commit(ctx))
		}
		f, handler, _ := setup(t, 3, func(ctx context.Context) {
			drain(ctx)
		})
		cmd, err := commands.NewAllocateOrderCommand("SO001")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		var short *services.InsufficientStockError
		require.True(t, errors.As(err, &short))
		require.Len(t, short.Shortages, 1)
		assert.Equal(t, "FG001", short.Shortages[0].SKU)
		assert.Equal(t, 100, short.Shortages[0].Requested)
		assert.Equal(t, 60, short.Shortages[0].Shortfall)
		assert.Equal(t, 40, f.available(t, "L1"))
	})
}
