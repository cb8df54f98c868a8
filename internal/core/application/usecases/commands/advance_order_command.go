package commands

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)

	// ErrActionNeedsDedicatedCommand is returned for actions that require
	// extra input (partner assignment, OTP, cancellation reason) and
	// therefore cannot go through the generic advance command.
	ErrActionNeedsDedicatedCommand = errors.New(
		"action requires its dedicated command")
)

// AdvanceOrderCommand represents a request to move an order one step forward
// in its lifecycle: confirm, start_preparing, mark_ready, mark_picked_up,
// start_delivery or refund. Assignment, OTP-gated delivery completion and
// cancellation carry extra input and have their own commands.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to perform one lifecycle action.
func NewAdvanceOrderCommand(orderID kernel.UUID, action order.Action) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the lifecycle action to perform.
func (c AdvanceOrderCommand) Action() order.Action {
	return c.action
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	switch action {
	case order.ActionAssignPartner, order.ActionCompleteDelivery, order.ActionCancel:
		return ErrActionNeedsDedicatedCommand
	}

	c.action = action
	return nil
}
