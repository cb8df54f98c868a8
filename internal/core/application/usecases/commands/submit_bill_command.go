package commands

import (
	"errors"
	"strings"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/pkg/guard"
)

var ErrSubmitBillCommandIsNotConstructed = errors.New(
	"SubmitBillCommand must be created via NewSubmitBillCommand constructor",
)

// SubmitBillCommand represents a delivery partner's expense claim, backed by
// a photographed receipt. Submission has no ledger effect.
type SubmitBillCommand struct { //nolint:recvcheck //using for validation
	billID      kernel.UUID
	partnerID   kernel.UUID
	orderID     *kernel.UUID
	amount      kernel.Money
	imageURL    string
	description string

	guard guard.ConstructorGuard
}

// NewSubmitBillCommand creates a command to submit an expense bill.
func NewSubmitBillCommand(
	billID kernel.UUID,
	partnerID kernel.UUID,
	orderID *kernel.UUID,
	amount kernel.Money,
	imageURL string,
	description string,
) (SubmitBillCommand, error) {
	cmd := SubmitBillCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBillID(billID),
		cmd.setPartnerID(partnerID),
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setImageURL(imageURL),
	); err != nil {
		return SubmitBillCommand{}, err
	}

	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBillCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBillCommandIsNotConstructed)
}

// BillID returns the unique identifier for the new bill.
func (c SubmitBillCommand) BillID() kernel.UUID {
	return c.billID
}

// PartnerID returns the submitting partner.
func (c SubmitBillCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// OrderID returns the related order, or nil.
func (c SubmitBillCommand) OrderID() *kernel.UUID {
	return c.orderID
}

// Amount returns the claimed amount.
func (c SubmitBillCommand) Amount() kernel.Money {
	return c.amount
}

// ImageURL returns the receipt image reference.
func (c SubmitBillCommand) ImageURL() string {
	return c.imageURL
}

// Description returns the expense description.
func (c SubmitBillCommand) Description() string {
	return c.description
}

func (c *SubmitBillCommand) setBillID(billID kernel.UUID) error {
	if err := billID.Validate(); err != nil {
		return err
	}

	c.billID = billID
	return nil
}

func (c *SubmitBillCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *SubmitBillCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitBillCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return partner.NewInvalidAmountError(amount.String())
	}

	c.amount = amount
	return nil
}

func (c *SubmitBillCommand) setImageURL(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return bill.ErrImageRefIsRequired
	}

	c.imageURL = imageURL
	return nil
}
