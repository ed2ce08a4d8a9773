package events

import (
	"context"
	"log/slog"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// LogPublisher writes status changes to the log. It is used when no broker
// is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher logs under the order_events component.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "order_events")}
}

// Publish writes one info record per event. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, StatusChangedType,
			"order_id", e.OrderID,
			"from", e.From.String(),
			"to", e.To.String(),
			"tracking_number", e.TrackingNumber,
			"occurred_at", e.OccurredAt,
		)
	}
	return nil
}
