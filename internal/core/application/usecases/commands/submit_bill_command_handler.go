package commands

import (
	"context"
	"time"

	"gromart/internal/core/domain/model/bill"
)

// SubmitBillCommandHandler persists a newly submitted expense bill in
// pending status.
type SubmitBillCommandHandler struct {
	uowFactory BillUoWFactory
}

// NewSubmitBillCommandHandler creates a handler for bill submission.
func NewSubmitBillCommandHandler(uowFactory BillUoWFactory) SubmitBillCommandHandler {
	return SubmitBillCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bill submission command.
func (h *SubmitBillCommandHandler) Handle(ctx context.Context, cmd SubmitBillCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := bill.NewDeliveryBill(
		cmd.BillID(),
		cmd.PartnerID(),
		cmd.OrderID(),
		cmd.Amount(),
		cmd.ImageURL(),
		cmd.Description(),
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

	if err = uow.BillRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
