package commands

import (
	"context"
	"log/slog"
	"time"

	"gromart/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order still in its cancellation
// window (pending or confirmed). The conditional status write guarantees a
// cancellation racing a vendor's start_preparing cannot both win.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	now := time.Now()
	if err = aggregate.Cancel(cmd.Reason(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, from); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if pubErr := h.publisher.PublishOrderStatusChanged(
		ctx, ports.NewOrderStatusChangedEvent(aggregate, from, now)); pubErr != nil {
		h.logger.WarnContext(ctx, "order status event publish failed",
			"order_id", cmd.OrderID().String(),
			"error", pubErr,
		)
	}
	return nil
}
