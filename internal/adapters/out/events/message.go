// Package events publishes order status changes, to RabbitMQ or to the log.
package events

import (
	"encoding/json"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusChangedType is the event type and routing key of status changes.
const StatusChangedType = "order.status_changed"

// StatusChangedMessage is the wire form of order.StatusChanged.
type StatusChangedMessage struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func newStatusChangedMessage(e order.StatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		ID:             uuid.NewString(),
		Type:           StatusChangedType,
		OrderID:        e.OrderID,
		From:           e.From.String(),
		To:             e.To.String(),
		TrackingNumber: e.TrackingNumber,
		OccurredAt:     e.OccurredAt.UTC(),
	}
}

func encode(e order.StatusChanged) ([]byte, StatusChangedMessage, error) {
	msg := newStatusChangedMessage(e)
	body, err := json.Marshal(msg)
	return body, msg, err
}
