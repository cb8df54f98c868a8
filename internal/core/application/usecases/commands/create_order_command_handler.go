package commands

import (
	"context"
	"time"

	"gromart/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Creates new orders in pending status with pricing, order number and
// delivery OTP derived at construction time.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Uses a transaction so the order and its items are persisted together or
// not at all.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.VendorID(),
		cmd.Address(),
		cmd.Items(),
		cmd.PaymentMethod(),
		cmd.Discount(),
		cmd.Tax(),
		cmd.Tip(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
