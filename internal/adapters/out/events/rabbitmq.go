package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher publishes status changes as persistent JSON messages on
// a durable topic exchange, routed by StatusChangedType.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
	mu       sync.Mutex
}

// DialRabbitMQ connects to the broker and declares the exchange.
func DialRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
	}, nil
}

// Publish sends each event as a persistent JSON message routed by its type.
// Every failed event is reported in the joined error.
func (p *RabbitMQPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, e := range events {
		body, msg, err := encode(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal event: %w", err))
			continue
		}

		err = p.channel.PublishWithContext(ctx,
			p.exchange,        // exchange
			StatusChangedType, // routing key
			false,             // mandatory
			false,             // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.OccurredAt,
				Type:         StatusChangedType,
				Body:         body,
			},
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to publish event for order %s: %w", e.OrderID, err))
			continue
		}

		p.logger.DebugContext(ctx, "event published", "order_id", msg.OrderID, "to", msg.To, "event_id", msg.ID)
	}

	return errors.Join(errs...)
}

// Close closes the channel and then the connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.logger.Warn("failed to close channel", "error", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
