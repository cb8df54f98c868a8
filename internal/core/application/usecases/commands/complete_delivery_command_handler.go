package commands

import (
	"context"
	"log/slog"
	"time"

	"gromart/internal/core/ports"
)

// CompleteDeliveryCommandHandler finishes the out_for_delivery → delivered
// edge. An OTP mismatch fails the command without touching the order; the
// partner may retry with the correct code. On success the order becomes
// delivered, cash orders are marked paid, and the partner is freed for the
// next assignment with the delivery counted.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the delivery completion command.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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
	if err = aggregate.CompleteDelivery(cmd.Otp(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, from); err != nil {
		return err
	}

	if partnerID := aggregate.PartnerID(); partnerID != nil {
		partnerRepo := uow.PartnerRepository()
		deliveryPartner, err := partnerRepo.GetForUpdate(ctx, *partnerID)
		if err != nil {
			return err
		}
		deliveryPartner.RecordDelivery()
		if err = partnerRepo.Update(ctx, deliveryPartner); err != nil {
			return err
		}
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
