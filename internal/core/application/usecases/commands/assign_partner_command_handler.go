package commands

import (
	"context"
	"log/slog"
	"time"

	"gromart/internal/core/ports"
)

// AssignPartnerCommandHandler hands a ready order to a delivery partner.
// The order must be in ready_for_pickup and the partner must be available;
// the order transition and the partner's busy flag commit in one transaction.
// The conditional write on the order status keeps two admins from assigning
// the same order to different partners.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the assignment command.
func (h *AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) error {
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
	partnerRepo := uow.PartnerRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	deliveryPartner, err := partnerRepo.GetForUpdate(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	if err = aggregate.AssignPartner(cmd.PartnerID()); err != nil {
		return err
	}
	if err = deliveryPartner.MarkAssigned(); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, from); err != nil {
		return err
	}
	if err = partnerRepo.Update(ctx, deliveryPartner); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if pubErr := h.publisher.PublishOrderStatusChanged(
		ctx, ports.NewOrderStatusChangedEvent(aggregate, from, time.Now())); pubErr != nil {
		h.logger.WarnContext(ctx, "order status event publish failed",
			"order_id", cmd.OrderID().String(),
			"error", pubErr,
		)
	}
	return nil
}
