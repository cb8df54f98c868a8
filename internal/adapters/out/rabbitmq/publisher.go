// Package rabbitmq publishes domain events to a RabbitMQ topic exchange.
// Consumers (notification services, analytics) bind their own queues with
// routing keys like "order.status.delivered".
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gromart/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ordersExchange = "orders_topic"
	publishTimeout = 5 * time.Second
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher implements ports.EventPublisher on top of an AMQP channel.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the orders exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ordersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// orderStatusChangedPayload is the wire format of a transition event.
type orderStatusChangedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PublishOrderStatusChanged publishes one transition event with routing key
// "order.status.<new status>".
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	body, err := json.Marshal(orderStatusChangedPayload{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		From:        event.FromName,
		To:          event.ToName,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		ordersExchange,
		"order.status."+event.ToName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that drops every event.
func NewNopPublisher() NopPublisher {
	return NopPublisher{}
}

// PublishOrderStatusChanged discards the event.
func (NopPublisher) PublishOrderStatusChanged(_ context.Context, _ ports.OrderStatusChangedEvent) error {
	return nil
}
