package ports

import (
	"context"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
)

// EventPublisher delivers order status changes to interested systems.
// Publishing happens after commit; a failure does not undo the transition.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged) error
}
