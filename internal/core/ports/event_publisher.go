package ports

import (
	"context"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
)

// OrderStatusChangedEvent describes one completed lifecycle transition.
// Events are published after the transition commits; delivery is best-effort
// and a publish failure never rolls back the transition.
type OrderStatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	From        order.Status
	To          order.Status
	FromName    string
	ToName      string
	OccurredAt  time.Time
}

// NewOrderStatusChangedEvent builds an event for a committed transition.
func NewOrderStatusChangedEvent(aggregate *order.Order, from order.Status, occurredAt time.Time) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.Number(),
		From:        from,
		To:          aggregate.Status(),
		FromName:    from.String(),
		ToName:      aggregate.Status().String(),
		OccurredAt:  occurredAt.UTC(),
	}
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	// PublishOrderStatusChanged publishes one transition event.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
