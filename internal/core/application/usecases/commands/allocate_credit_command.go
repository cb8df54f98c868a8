package commands

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/pkg/guard"
)

var ErrAllocateCreditCommandIsNotConstructed = errors.New(
	"AllocateCreditCommand must be created via NewAllocateCreditCommand constructor",
)

// AllocateCreditCommand represents an admin's request to record one
// balance-changing ledger event against a delivery partner: an advance
// issued, cash collected, a reimbursement or a penalty.
type AllocateCreditCommand struct { //nolint:recvcheck //using for validation
	partnerID   kernel.UUID
	txType      partner.TransactionType
	amount      kernel.Money
	description string
	orderID     *kernel.UUID
	createdBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAllocateCreditCommand creates a command to allocate credit or debt.
// The amount must be strictly positive; the transaction type carries the
// direction.
func NewAllocateCreditCommand(
	partnerID kernel.UUID,
	txType partner.TransactionType,
	amount kernel.Money,
	description string,
	orderID *kernel.UUID,
	createdBy kernel.UUID,
) (AllocateCreditCommand, error) {
	cmd := AllocateCreditCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setTxType(txType),
		cmd.setAmount(amount),
		cmd.setOrderID(orderID),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return AllocateCreditCommand{}, err
	}

	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateCreditCommand) Validate() error {
	return c.guard.Validate(ErrAllocateCreditCommandIsNotConstructed)
}

// PartnerID returns the partner whose balance changes.
func (c AllocateCreditCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// TxType returns the kind of ledger event.
func (c AllocateCreditCommand) TxType() partner.TransactionType {
	return c.txType
}

// Amount returns the positive amount to move.
func (c AllocateCreditCommand) Amount() kernel.Money {
	return c.amount
}

// Description returns the free-text reason.
func (c AllocateCreditCommand) Description() string {
	return c.description
}

// OrderID returns the related order, or nil.
func (c AllocateCreditCommand) OrderID() *kernel.UUID {
	return c.orderID
}

// CreatedBy returns the admin recording the event.
func (c AllocateCreditCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *AllocateCreditCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *AllocateCreditCommand) setTxType(txType partner.TransactionType) error {
	if err := txType.Validate(); err != nil {
		return err
	}

	c.txType = txType
	return nil
}

func (c *AllocateCreditCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return partner.NewInvalidAmountError(amount.String())
	}

	c.amount = amount
	return nil
}

func (c *AllocateCreditCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AllocateCreditCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
