package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoAllocationJob periodically tries to allocate every pending order,
// urgent orders first and then by order date.
type AutoAllocationJob struct {
	listOrders    queries.ListOrdersQueryHandler
	allocateOrder commands.AllocateOrderCommandHandler
	schedule      string
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewAutoAllocationJob builds the job. schedule is a six field cron
// expression with seconds.
func NewAutoAllocationJob(
	listOrders queries.ListOrdersQueryHandler,
	allocateOrder commands.AllocateOrderCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoAllocationJob {
	return &AutoAllocationJob{
		listOrders:    listOrders,
		allocateOrder: allocateOrder,
		schedule:      schedule,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "auto_allocation_job"),
	}
}

// Start schedules RunOnce. It fails on an invalid schedule.
func (j *AutoAllocationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Auto allocation job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto allocation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *AutoAllocationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto allocation job stopped")
}

// RunOnce makes one pass over the pending orders and returns the IDs it
// allocated. Orders short of stock stay pending and are not reported as
// errors; other failures are logged and the pass moves on.
func (j *AutoAllocationJob) RunOnce(ctx context.Context) ([]string, error) {
	query, err := queries.NewListOrdersQuery(order.Pending)
	if err != nil {
		return nil, err
	}

	pending, err := j.listOrders.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	// List is by order date; a stable sort keeps that within a priority.
	sort.SliceStable(pending, func(a, b int) bool {
		return pending[a].Priority.Rank() < pending[b].Priority.Rank()
	})

	var allocated []string
	for _, o := range pending {
		if ctx.Err() != nil {
			return allocated, ctx.Err()
		}

		cmd, err := commands.NewAllocateOrderCommand(o.ID)
		if err != nil {
			return allocated, err
		}

		_, err = j.allocateOrder.Handle(ctx, cmd)
		switch {
		case err == nil:
			allocated = append(allocated, o.ID)
		case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, order.ErrInvalidTransition):
			j.logger.DebugContext(ctx, "Order left pending", "order_id", o.ID, "reason", err)
		default:
			j.logger.ErrorContext(ctx, "Failed to allocate order", "order_id", o.ID, "error", err)
		}
	}

	if len(allocated) > 0 {
		j.logger.InfoContext(ctx, "Orders allocated", "count", len(allocated), "order_ids", allocated)
	}
	return allocated, nil
}
