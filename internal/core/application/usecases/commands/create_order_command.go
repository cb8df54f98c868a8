package commands

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new marketplace order.
// Encapsulates the customer, vendor, delivery address, order lines and the
// monetary adjustments that do not come from the pricing policy.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, vendorID, address, items,
//	    order.PaymentMethodCash, discount, tax, tip)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	vendorID      kernel.UUID
	address       order.Address
	items         []*order.Item
	paymentMethod order.PaymentMethod
	discount      kernel.Money
	tax           kernel.Money
	tip           kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// The items must already be valid order lines; the handler derives all
// pricing from them.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	address order.Address,
	items []*order.Item,
	paymentMethod order.PaymentMethod,
	discount kernel.Money,
	tax kernel.Money,
	tip kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setVendorID(vendorID),
		cmd.setAddress(address),
		cmd.setItems(items),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.discount = discount
	cmd.tax = tax
	cmd.tip = tip

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorID returns the fulfilling vendor.
func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Address returns the delivery address snapshot.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []*order.Item {
	return c.items
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Discount returns the order-level discount.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// Tax returns the tax amount.
func (c CreateOrderCommand) Tax() kernel.Money {
	return c.tax
}

// Tip returns the optional tip for the delivery partner.
func (c CreateOrderCommand) Tip() kernel.Money {
	return c.tip
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []*order.Item) error {
	if len(items) == 0 {
		return order.ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
