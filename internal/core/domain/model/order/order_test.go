package order_test

import (
	"testing"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderDate     = kernel.NewDate(2025, time.September, 10)
	requestedDate = kernel.NewDate(2025, time.September, 12)
	expiryL1      = kernel.NewDate(2025, time.October, 9)
	expiryL2      = kernel.NewDate(2025, time.October, 10)
)

func newLine(t *testing.T, sku string, quantity int) *order.Line {
	t.Helper()
	l, err := order.NewLine(sku, "애니콩 펫베이커리 "+sku, quantity, "ea")
	require.NoError(t, err)
	return l
}

func newOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder("SO001", order.B2B, "펫마트 강남점", order.Normal, orderDate, requestedDate, lines)
	require.NoError(t, err)
	return o
}

func newAllocation(t *testing.T, lotID string, quantity int, expiry kernel.Date) order.Allocation {
	t.Helper()
	a, err := order.NewAllocation(lotID, quantity, "P2-FG-A1", expiry)
	require.NoError(t, err)
	return a
}

func allocatedOrder(t *testing.T) *order.Order {
	t.Helper()
	line := newLine(t, "FG001", 120)
	o := newOrder(t, line)
	require.NoError(t, o.Allocate(map[kernel.UUID][]order.Allocation{
		line.ID(): {
			newAllocation(t, "L1", 100, expiryL1),
			newAllocation(t, "L2", 20, expiryL2),
		},
	}))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order", func(t *testing.T) {
		fg1 := newLine(t, "FG001", 100)
		fg2 := newLine(t, "FG002", 50)

		o := newOrder(t, fg1, fg2)

		require.NoError(t, o.Validate())
		assert.Equal(t, "SO001", o.ID())
		assert.Equal(t, order.B2B, o.Channel())
		assert.Equal(t, "펫마트 강남점", o.Customer())
		assert.Equal(t, order.Normal, o.Priority())
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.TrackingNumber())
		assert.Equal(t, 0, o.Version())
		assert.Equal(t, []string{"FG001", "FG002"}, o.SKUs())
		assert.Equal(t, 150, o.TotalOrdered())
		assert.Equal(t, 0, o.TotalAllocated())
		assert.Len(t, o.Lines(), 2)
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should join field errors", func(t *testing.T) {
		o, err := order.NewOrder("", "EDI", " ", "asap", kernel.Date{}, requestedDate, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		for _, param := range []string{"orderId", "channel", "customer", "priority", "orderDate", "lines"} {
			assert.Contains(t, err.Error(), param)
		}
	})

	t.Run("should reject a requested date before the order date", func(t *testing.T) {
		_, err := order.NewOrder("SO001", order.B2B, "c", order.Normal,
			requestedDate, orderDate, []*order.Line{newLine(t, "FG001", 1)})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "requestedDate")
	})

	t.Run("should reject duplicate line ids", func(t *testing.T) {
		l := newLine(t, "FG001", 1)

		_, err := order.NewOrder("SO001", order.B2B, "c", order.Normal, orderDate, requestedDate, []*order.Line{l, l})

		assert.ErrorContains(t, err, "duplicate line id")
	})

	t.Run("should reject a zero-value line", func(t *testing.T) {
		_, err := order.NewOrder("SO001", order.B2B, "c", order.Normal, orderDate, requestedDate, []*order.Line{{}})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), order.ErrLineIsNotConstructed.Error())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a shipped order", func(t *testing.T) {
		line, err := order.RestoreLine(kernel.NewUUID(), "FG001", "A", 10, "ea",
			[]order.Allocation{newAllocation(t, "L1", 10, expiryL1)})
		require.NoError(t, err)

		o, err := order.RestoreOrder("SO009", order.B2C, "c", order.Low, orderDate, requestedDate,
			order.Shipped, "TRK20250912000001", 3, []*order.Line{line})

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, "TRK20250912000001", o.TrackingNumber())
		assert.Equal(t, 3, o.Version())
	})

	t.Run("should reject inconsistent status and allocations", func(t *testing.T) {
		partial, err := order.RestoreLine(kernel.NewUUID(), "FG001", "A", 10, "ea",
			[]order.Allocation{newAllocation(t, "L1", 4, expiryL1)})
		require.NoError(t, err)

		_, err = order.RestoreOrder("SO1", order.B2B, "c", order.Normal, orderDate, requestedDate,
			order.Allocated, "", 1, []*order.Line{partial})
		assert.ErrorContains(t, err, "not fully allocated")

		_, err = order.RestoreOrder("SO1", order.B2B, "c", order.Normal, orderDate, requestedDate,
			order.Pending, "", 1, []*order.Line{partial})
		assert.ErrorContains(t, err, "units allocated")
	})

	t.Run("should tie the tracking number to the shipped status", func(t *testing.T) {
		full, err := order.RestoreLine(kernel.NewUUID(), "FG001", "A", 10, "ea",
			[]order.Allocation{newAllocation(t, "L1", 10, expiryL1)})
		require.NoError(t, err)

		_, err = order.RestoreOrder("SO1", order.B2B, "c", order.Normal, orderDate, requestedDate,
			order.Shipped, "", 1, []*order.Line{full})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.RestoreOrder("SO1", order.B2B, "c", order.Normal, orderDate, requestedDate,
			order.Picked, "TRK1", 1, []*order.Line{full})
		assert.ErrorContains(t, err, "cannot have a tracking number")
	})
}

func TestOrder_Allocate(t *testing.T) {
	t.Run("should apply every line and move to allocated", func(t *testing.T) {
		o := allocatedOrder(t)

		assert.Equal(t, order.Allocated, o.Status())
		line := o.Lines()[0]
		assert.Equal(t, 120, line.AllocatedQuantity())
		assert.True(t, o.IsFullyAllocated())
		require.Len(t, line.Allocations(), 2)
		assert.Equal(t, "L1", line.Allocations()[0].LotID())
		assert.Equal(t, 100, line.Allocations()[0].Quantity())
		assert.Equal(t, "L2", line.Allocations()[1].LotID())
		assert.Equal(t, 20, line.Allocations()[1].Quantity())

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "SO001", events[0].OrderID)
		assert.Equal(t, order.Pending, events[0].From)
		assert.Equal(t, order.Allocated, events[0].To)
	})

	t.Run("should change nothing when one line is short", func(t *testing.T) {
		fg1 := newLine(t, "FG001", 100)
		fg2 := newLine(t, "FG002", 50)
		o := newOrder(t, fg1, fg2)

		err := o.Allocate(map[kernel.UUID][]order.Allocation{
			fg1.ID(): {newAllocation(t, "L1", 100, expiryL1)},
			fg2.ID(): {newAllocation(t, "L4", 49, expiryL1)},
		})

		require.ErrorIs(t, err, order.ErrIncompleteAllocation)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, 0, o.TotalAllocated())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should require every line", func(t *testing.T) {
		fg1 := newLine(t, "FG001", 100)
		fg2 := newLine(t, "FG002", 50)
		o := newOrder(t, fg1, fg2)

		err := o.Allocate(map[kernel.UUID][]order.Allocation{
			fg1.ID(): {newAllocation(t, "L1", 100, expiryL1)},
		})

		require.ErrorIs(t, err, order.ErrIncompleteAllocation)
		assert.Equal(t, 0, o.TotalAllocated())
	})

	t.Run("should reject allocations for foreign lines", func(t *testing.T) {
		fg1 := newLine(t, "FG001", 10)
		o := newOrder(t, fg1)

		err := o.Allocate(map[kernel.UUID][]order.Allocation{
			fg1.ID():         {newAllocation(t, "L1", 10, expiryL1)},
			kernel.NewUUID(): {newAllocation(t, "L1", 1, expiryL1)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reject zero-value allocations", func(t *testing.T) {
		fg1 := newLine(t, "FG001", 10)
		o := newOrder(t, fg1)

		err := o.Allocate(map[kernel.UUID][]order.Allocation{
			fg1.ID(): {{}, newAllocation(t, "L1", 10, expiryL1)},
		})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should be legal only from pending", func(t *testing.T) {
		o := allocatedOrder(t)

		err := o.Allocate(map[kernel.UUID][]order.Allocation{})

		var invalid *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, order.Allocated, invalid.From)
		assert.Equal(t, order.Allocated, invalid.To)
		assert.Equal(t, 120, o.TotalAllocated())
	})
}

func TestOrder_CompletePicking(t *testing.T) {
	t.Run("should move a fully allocated order to picked", func(t *testing.T) {
		o := allocatedOrder(t)

		require.NoError(t, o.CompletePicking())
		assert.Equal(t, order.Picked, o.Status())
	})

	t.Run("should fail with incomplete allocation on a pending order", func(t *testing.T) {
		o := newOrder(t, newLine(t, "FG001", 10))

		err := o.CompletePicking()

		require.ErrorIs(t, err, order.ErrIncompleteAllocation)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should not pick twice", func(t *testing.T) {
		o := allocatedOrder(t)
		require.NoError(t, o.CompletePicking())

		err := o.CompletePicking()

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Picked, o.Status())
	})
}

func TestOrder_Ship(t *testing.T) {
	t.Run("should ship a picked order with its tracking number", func(t *testing.T) {
		o := allocatedOrder(t)
		require.NoError(t, o.CompletePicking())
		o.ClearDomainEvents()

		require.NoError(t, o.Ship("TRK20250912000001"))

		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, "TRK20250912000001", o.TrackingNumber())
		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.Picked, events[0].From)
		assert.Equal(t, order.Shipped, events[0].To)
	})

	t.Run("should fail from pending and allocated", func(t *testing.T) {
		pending := newOrder(t, newLine(t, "FG001", 10))
		allocated := allocatedOrder(t)

		for _, o := range []*order.Order{pending, allocated} {
			before := o.Status()

			err := o.Ship("TRK1")

			require.ErrorIs(t, err, order.ErrInvalidTransition)
			assert.Equal(t, before, o.Status())
			assert.Empty(t, o.TrackingNumber())
		}
	})

	t.Run("should require a tracking number", func(t *testing.T) {
		o := allocatedOrder(t)
		require.NoError(t, o.CompletePicking())

		err := o.Ship("  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Picked, o.Status())
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
