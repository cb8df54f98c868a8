package commands

import (
	"context"
	"errors"
	"time"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/ports"
)

// ReviewBillCommandHandler applies an admin's decision to a pending bill.
// The write is conditional on the bill still being pending, so two
// concurrent reviews cannot both win; the loser gets AlreadyReviewedError.
// Approval does not touch the credit ledger: the approved amount only feeds
// the net-to-transfer report.
type ReviewBillCommandHandler struct {
	uowFactory BillUoWFactory
}

// NewReviewBillCommandHandler creates a handler for bill review.
func NewReviewBillCommandHandler(uowFactory BillUoWFactory) ReviewBillCommandHandler {
	return ReviewBillCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command.
func (h *ReviewBillCommandHandler) Handle(ctx context.Context, cmd ReviewBillCommand) error {
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

	billRepo := uow.BillRepository()
	aggregate, err := billRepo.Get(ctx, cmd.BillID())
	if err != nil {
		return err
	}

	if err = aggregate.Review(cmd.Decision(), cmd.ReviewerID(), cmd.Notes(), time.Now()); err != nil {
		return err
	}

	if err = billRepo.UpdateInStatus(ctx, aggregate, bill.StatusPending); err != nil {
		// a racing reviewer decided first; report it as a completed review
		if errors.Is(err, ports.ErrConcurrentModification) {
			return bill.NewAlreadyReviewedError(aggregate.ID(), aggregate.Status())
		}
		return err
	}

	return uow.Commit(ctx)
}
