package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gromart/internal/core/ports"
)

// maxTransitionAttempts bounds the re-read-and-retry loop on lost
// check-and-set races. Beyond this the conflict is surfaced to the caller.
const maxTransitionAttempts = 3

// AdvanceOrderCommandHandler performs one forward lifecycle transition on an
// order. The new status is written with a conditional update on the status
// the order was read in, so two concurrent transitions cannot both succeed;
// the loser re-reads the order and retries a bounded number of times.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceOrderCommandHandler creates a handler for lifecycle transitions.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition command. Publishes an order.status_changed
// event after the transition commits; publishing is best-effort and never
// fails the transition.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		event, err := h.transition(ctx, cmd)
		if err == nil {
			if pubErr := h.publisher.PublishOrderStatusChanged(ctx, event); pubErr != nil {
				h.logger.WarnContext(ctx, "order status event publish failed",
					"order_id", cmd.OrderID().String(),
					"error", pubErr,
				)
			}
			return nil
		}
		if !errors.Is(err, ports.ErrConcurrentModification) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("order transition lost %d check-and-set races: %w", maxTransitionAttempts, lastErr)
}

func (h *AdvanceOrderCommandHandler) transition(
	ctx context.Context,
	cmd AdvanceOrderCommand,
) (ports.OrderStatusChangedEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.OrderStatusChangedEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.OrderStatusChangedEvent{}, err
	}

	from := aggregate.Status()
	now := time.Now()
	if err = aggregate.Apply(cmd.Action(), now); err != nil {
		return ports.OrderStatusChangedEvent{}, err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, from); err != nil {
		return ports.OrderStatusChangedEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.OrderStatusChangedEvent{}, err
	}

	return ports.NewOrderStatusChangedEvent(aggregate, from, now), nil
}
