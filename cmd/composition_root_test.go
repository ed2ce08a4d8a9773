package cmd_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/3suji3/Inventory-management-test/cmd"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:              "8080",
		StorageDriver:         cmd.StorageMemory,
		AllocationMaxAttempts: 3,
		LockTTL:               time.Second,
		ExpiryWarningDays:     3,
		TrackingPrefix:        "TRK",
		LogLevel:              "info",
	}
}

func TestCompositionRoot_DemoScenario(t *testing.T) {
	ctx := t.Context()
	root, err := cmd.NewCompositionRoot(ctx, memoryConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, root.Close()) })

	require.NoError(t, root.SeedDemo(ctx))
	require.NoError(t, root.SeedDemo(ctx), "seeding twice must be harmless")

	allocate, err := commands.NewAllocateOrderCommand("SO001")
	require.NoError(t, err)
	allocated, err := root.CreateAllocateOrderCommandHandler().Handle(ctx, allocate)
	require.NoError(t, err)
	assert.Equal(t, order.Allocated, allocated.Status)

	pickingQuery, err := queries.NewGetPickingListQuery("SO001")
	require.NoError(t, err)
	entries, err := root.CreateGetPickingListQueryHandler().Handle(ctx, pickingQuery)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "LOT20250909001", entries[0].LotID)
	assert.Equal(t, 100, entries[0].Quantity)
	assert.Equal(t, "P2-FG-A1", entries[0].Location)
	assert.Equal(t, "LOT20250908004", entries[1].LotID)
	assert.Equal(t, 50, entries[1].Quantity)

	complete, err := commands.NewCompletePickingCommand("SO001")
	require.NoError(t, err)
	require.NoError(t, root.CreateCompletePickingCommandHandler().Handle(ctx, complete))

	ship, err := commands.NewShipOrderCommand("SO001")
	require.NoError(t, err)
	trackingNumber, err := root.CreateShipOrderCommandHandler().Handle(ctx, ship)
	require.NoError(t, err)
	assert.Regexp(t, `^TRK\d{14}$`, trackingNumber)

	stockQuery, err := queries.NewGetAvailableStockQuery("FG001", nil)
	require.NoError(t, err)
	stock, err := root.CreateGetAvailableStockQueryHandler().Handle(ctx, stockQuery)
	require.NoError(t, err)
	require.Len(t, stock, 3)
	assert.Equal(t, 750, stock[0].QuantityAvailable)

	summary, err := root.CreateGetOrderSummaryQueryHandler().Handle(ctx, queries.NewGetOrderSummaryQuery())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
}

func TestCompositionRoot_HTTPAndJobs(t *testing.T) {
	root, err := cmd.NewCompositionRoot(t.Context(), memoryConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, root.Close()) })

	assert.NotNil(t, root.CreateHTTPServer())

	jm := root.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
