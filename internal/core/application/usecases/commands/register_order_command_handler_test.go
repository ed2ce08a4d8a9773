package commands_test

import (
	"errors"
	"testing"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRegisterCommand(t *testing.T, lines ...commands.RegisterOrderLine) commands.RegisterOrderCommand {
	t.Helper()
	if len(lines) == 0 {
		lines = []commands.RegisterOrderLine{
			{SKU: "FG001", ProductName: "애니콩 펫베이커리 A", Quantity: 100, Unit: "ea"},
			{SKU: "FG002", ProductName: "애니콩 펫베이커리 B", Quantity: 50, Unit: "ea"},
		}
	}
	cmd, err := commands.NewRegisterOrderCommand("SO001", order.B2B, "펫마트 강남점", order.Normal,
		testOrderDate, testRequestedDate, lines)
	require.NoError(t, err)
	return cmd
}

func TestRegisterOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newRegisterCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID() == "SO001" &&
				o.Status() == order.Pending &&
				len(o.Lines()) == 2 &&
				o.TotalOrdered() == 150 &&
				o.TotalAllocated() == 0
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRegisterOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewRegisterOrderCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.RegisterOrderCommand{})

	require.ErrorIs(t, err, commands.ErrRegisterOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterOrderCommandHandler_Handle_InvalidLine(t *testing.T) {
	cmd := newRegisterCommand(t,
		commands.RegisterOrderLine{SKU: "FG001", ProductName: "A", Quantity: 0, Unit: "ea"},
		commands.RegisterOrderLine{SKU: "", ProductName: "B", Quantity: 5, Unit: "ea"},
	)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewRegisterOrderCommandHandler(factory)
	err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "lines[0]")
	assert.Contains(t, err.Error(), "lines[1]")
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterOrderCommandHandler_Handle_AlreadyExists(t *testing.T) {
	ctx := t.Context()
	cmd := newRegisterCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(ports.ErrAlreadyExists).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRegisterOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrAlreadyExists)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestRegisterOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newRegisterCommand(t)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewRegisterOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
