package commands_test

import (
	"testing"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterOrderCommand_ValidInput(t *testing.T) {
	lines := []commands.RegisterOrderLine{{SKU: "FG001", ProductName: "애니콩 펫베이커리 A", Quantity: 100, Unit: "ea"}}

	cmd, err := commands.NewRegisterOrderCommand("SO001", order.B2B, "펫마트 강남점", order.Urgent,
		testOrderDate, testRequestedDate, lines)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "SO001", cmd.OrderID())
	assert.Equal(t, order.B2B, cmd.Channel())
	assert.Equal(t, order.Urgent, cmd.Priority())
	assert.Equal(t, lines, cmd.Lines())
}

func TestNewRegisterOrderCommand_MissingFields(t *testing.T) {
	_, err := commands.NewRegisterOrderCommand(" ", order.B2B, "c", order.Normal,
		testOrderDate, testRequestedDate, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderId")
	assert.Contains(t, err.Error(), "lines")
}

func TestRegisterOrderCommand_LinesAreCopied(t *testing.T) {
	lines := []commands.RegisterOrderLine{{SKU: "FG001", ProductName: "A", Quantity: 1, Unit: "ea"}}
	cmd, err := commands.NewRegisterOrderCommand("SO001", order.B2C, "c", order.Normal,
		testOrderDate, testRequestedDate, lines)
	require.NoError(t, err)

	lines[0].Quantity = 99
	got := cmd.Lines()
	got[0].Quantity = 42

	assert.Equal(t, 1, cmd.Lines()[0].Quantity)
}
