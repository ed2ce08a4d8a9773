package jobs

import (
	"context"
	"log/slog"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ExpiringLotsJob periodically logs lots with stock left that expire within
// the warning window, and lots already past their expiry.
type ExpiringLotsJob struct {
	stock       queries.GetAvailableStockQueryHandler
	warningDays int
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewExpiringLotsJob builds the job. schedule is a six field cron
// expression with seconds.
func NewExpiringLotsJob(
	stock queries.GetAvailableStockQueryHandler,
	warningDays int,
	schedule string,
	logger *slog.Logger,
) *ExpiringLotsJob {
	return &ExpiringLotsJob{
		stock:       stock,
		warningDays: warningDays,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "expiring_lots_job"),
	}
}

// Start schedules RunOnce. It fails on an invalid schedule.
func (j *ExpiringLotsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Expiring lots job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiring lots job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running scan to finish.
func (j *ExpiringLotsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expiring lots job stopped")
}

// RunOnce returns the lots inside the warning window in FEFO order.
func (j *ExpiringLotsJob) RunOnce(ctx context.Context) ([]queries.GetAvailableStockQueryResponse, error) {
	query, err := queries.NewGetAvailableStockQuery("", &j.warningDays)
	if err != nil {
		return nil, err
	}

	lots, err := j.stock.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, l := range lots {
		attrs := []any{
			"lot_id", l.LotID,
			"sku", l.SKU,
			"quantity_available", l.QuantityAvailable,
			"expiry_date", l.Expiry.String(),
			"location", l.Location,
			"days_to_expiry", l.DaysToExpiry,
		}
		if l.DaysToExpiry < 0 {
			j.logger.WarnContext(ctx, "Lot expired with stock left", attrs...)
			continue
		}
		j.logger.WarnContext(ctx, "Lot expiring soon", attrs...)
	}
	return lots, nil
}
