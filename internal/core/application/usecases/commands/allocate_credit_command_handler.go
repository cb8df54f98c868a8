package commands

import (
	"context"
	"time"
)

// AllocateCreditCommandHandler records one ledger event against a delivery
// partner. The partner row is loaded with a row lock so concurrent
// allocations serialize; the updated balance and the new ledger entry are
// committed in the same transaction, which keeps the balance_after chain of
// the partner's history consistent.
type AllocateCreditCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewAllocateCreditCommandHandler creates a handler for ledger allocations.
func NewAllocateCreditCommandHandler(uowFactory PartnerUoWFactory) AllocateCreditCommandHandler {
	return AllocateCreditCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the allocation command.
func (h *AllocateCreditCommandHandler) Handle(ctx context.Context, cmd AllocateCreditCommand) error {
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

	partnerRepo := uow.PartnerRepository()
	deliveryPartner, err := partnerRepo.GetForUpdate(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	entry, err := deliveryPartner.Allocate(
		cmd.TxType(),
		cmd.Amount(),
		cmd.Description(),
		cmd.OrderID(),
		cmd.CreatedBy(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = partnerRepo.Update(ctx, deliveryPartner); err != nil {
		return err
	}
	if err = partnerRepo.AddTransaction(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
