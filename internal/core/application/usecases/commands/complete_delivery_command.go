package commands

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrOtpIsRequired = errors.New("delivery OTP is required")
)

// CompleteDeliveryCommand represents the OTP-gated final handoff: the
// delivery partner supplies the code the customer received at order
// placement.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	otp     string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(orderID kernel.UUID, otp string) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOtp(otp),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Otp returns the code supplied by the partner.
func (c CompleteDeliveryCommand) Otp() string {
	return c.otp
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setOtp(otp string) error {
	if otp == "" {
		return ErrOtpIsRequired
	}

	c.otp = otp
	return nil
}
