package order

import (
	"crypto/subtle"
	"errors"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidOtp is returned by CompleteDelivery when the supplied code does
	// not match the stored delivery OTP. The order is left untouched and the
	// caller may retry with another code.
	ErrInvalidOtp = errors.New("delivery otp does not match")

	// ErrOrderHasNoItems is returned when attempting to create an order without lines.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrCancellationReasonIsRequired is returned when cancelling without a reason.
	ErrCancellationReasonIsRequired = errs.NewValueIsRequiredError("cancellation reason")
)

// Milestones holds the lifecycle timestamps of an order. Each field is set
// at most once, when the corresponding transition happens, and is nil before
// that. The sequence of non-nil values is monotonically non-decreasing.
type Milestones struct {
	ConfirmedAt *time.Time
	PreparingAt *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is the aggregate root for one purchase transaction. It owns the
// status state machine, the delivery OTP, the monetary breakdown and the
// immutable line items.
//
// Order follows these invariants:
//   - Status moves only along the transition table in status.go
//   - Milestone timestamps are stamped exactly once, on their transition
//   - Monetary fields are non-negative and total = subtotal + fees − discount + tax + tip
//   - The address and product snapshots are frozen at creation time
//   - Orders are never deleted; cancel and refund are statuses
//
// All mutation goes through the transition methods below; the struct has no
// exported fields.
type Order struct {
	id            kernel.UUID
	number        string
	customerID    kernel.UUID
	vendorID      kernel.UUID
	partnerID     *kernel.UUID
	status        Status
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	deliveryOtp   string
	address       Address
	items         []*Item
	subtotal      kernel.Money
	deliveryFee   kernel.Money
	platformFee   kernel.Money
	discount      kernel.Money
	tax           kernel.Money
	tip           kernel.Money
	total         kernel.Money
	milestones    Milestones
	cancelReason  string
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in pending status. This is the only way to
// create a valid fresh order.
//
// The constructor freezes the address snapshot, takes ownership of the
// already-validated items, derives the subtotal from the line totals,
// applies the platform pricing policy (delivery fee, platform fee) and
// computes the grand total. A delivery OTP and a human-readable order
// number are generated here so the order is complete from the first write.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	address Address,
	items []*Item,
	paymentMethod PaymentMethod,
	discount kernel.Money,
	tax kernel.Money,
	tip kernel.Money,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		address.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(item.Total())
	}

	deliveryFee := DeliveryFeeFor(subtotal)
	platformFee := PlatformFee()

	afterDiscount, err := subtotal.Add(deliveryFee).Add(platformFee).Sub(discount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}
	total := afterDiscount.Add(tax).Add(tip)

	number, err := NewOrderNumber(now)
	if err != nil {
		return nil, err
	}
	otp, err := NewDeliveryOTP()
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		customerID:    customerID,
		vendorID:      vendorID,
		status:        StatusPending,
		paymentMethod: paymentMethod,
		paymentStatus: PaymentStatusPending,
		deliveryOtp:   otp,
		address:       address,
		items:         items,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		platformFee:   platformFee,
		discount:      discount,
		tax:           tax,
		tip:           tip,
		total:         total,
		createdAt:     now.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its status, timestamps and monetary breakdown as stored.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	partnerID *kernel.UUID,
	status Status,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	deliveryOtp string,
	address Address,
	items []*Item,
	subtotal, deliveryFee, platformFee, discount, tax, tip, total kernel.Money,
	milestones Milestones,
	cancelReason string,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		status.Validate(),
		paymentMethod.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		number:        number,
		customerID:    customerID,
		vendorID:      vendorID,
		partnerID:     partnerID,
		status:        status,
		paymentMethod: paymentMethod,
		paymentStatus: paymentStatus,
		deliveryOtp:   deliveryOtp,
		address:       address,
		items:         items,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		platformFee:   platformFee,
		discount:      discount,
		tax:           tax,
		tip:           tip,
		total:         total,
		milestones:    milestones,
		cancelReason:  cancelReason,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-readable order number.
func (o *Order) Number() string { return o.number }

// CustomerID returns the buying customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// VendorID returns the selling vendor's identifier.
func (o *Order) VendorID() kernel.UUID { return o.vendorID }

// PartnerID returns the assigned delivery partner, or nil if unassigned.
func (o *Order) PartnerID() *kernel.UUID { return o.partnerID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the settlement state of the payment.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// DeliveryOtp returns the stored handoff code.
func (o *Order) DeliveryOtp() string { return o.deliveryOtp }

// Address returns the frozen delivery address snapshot.
func (o *Order) Address() Address { return o.address }

// Items returns the order's immutable lines.
func (o *Order) Items() []*Item { return o.items }

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryFee returns the charged delivery fee.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// PlatformFee returns the charged platform fee.
func (o *Order) PlatformFee() kernel.Money { return o.platformFee }

// Discount returns the order-level discount.
func (o *Order) Discount() kernel.Money { return o.discount }

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money { return o.tax }

// Tip returns the tip amount.
func (o *Order) Tip() kernel.Money { return o.tip }

// Total returns the grand total.
func (o *Order) Total() kernel.Money { return o.total }

// Milestones returns the lifecycle timestamps stamped so far.
func (o *Order) Milestones() Milestones { return o.milestones }

// CancellationReason returns the reason recorded at cancellation, if any.
func (o *Order) CancellationReason() string { return o.cancelReason }

// CreatedAt returns the creation time of the order.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Confirm moves the order from pending to confirmed and stamps confirmed_at.
// Vendor-initiated.
func (o *Order) Confirm(now time.Time) error {
	if err := o.apply(ActionConfirm); err != nil {
		return err
	}
	t := now.UTC()
	o.milestones.ConfirmedAt = &t
	return nil
}

// StartPreparing moves the order from confirmed to preparing and stamps
// preparing_at. Vendor-initiated.
func (o *Order) StartPreparing(now time.Time) error {
	if err := o.apply(ActionStartPreparing); err != nil {
		return err
	}
	t := now.UTC()
	o.milestones.PreparingAt = &t
	return nil
}

// MarkReady moves the order from preparing to ready_for_pickup.
// Vendor-initiated.
func (o *Order) MarkReady() error {
	return o.apply(ActionMarkReady)
}

// AssignPartner assigns a delivery partner and moves the order to
// assigned_to_delivery. The partner reference and the status change are one
// atomic step on the aggregate. Admin-initiated.
func (o *Order) AssignPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if err := o.apply(ActionAssignPartner); err != nil {
		return err
	}
	o.partnerID = &partnerID
	return nil
}

// MarkPickedUp moves the order from assigned_to_delivery to picked_up and
// stamps picked_up_at. Partner-initiated.
func (o *Order) MarkPickedUp(now time.Time) error {
	if err := o.apply(ActionMarkPickedUp); err != nil {
		return err
	}
	t := now.UTC()
	o.milestones.PickedUpAt = &t
	return nil
}

// StartDelivery moves the order from picked_up to out_for_delivery.
// Partner-initiated.
func (o *Order) StartDelivery() error {
	return o.apply(ActionStartDelivery)
}

// CompleteDelivery is the OTP-gated terminal transition. The supplied code
// is compared against the stored OTP with exact, constant-time string
// equality. On a match the order becomes delivered, delivered_at is stamped
// and cash-on-delivery payments are marked completed. On a mismatch the
// order is left untouched and ErrInvalidOtp is returned; the caller may
// retry with another code.
func (o *Order) CompleteDelivery(suppliedOtp string, now time.Time) error {
	if !o.status.CanApply(ActionCompleteDelivery) {
		return NewInvalidTransitionError(o.status, ActionCompleteDelivery)
	}
	if subtle.ConstantTimeCompare([]byte(o.deliveryOtp), []byte(suppliedOtp)) != 1 {
		return ErrInvalidOtp
	}
	if err := o.apply(ActionCompleteDelivery); err != nil {
		return err
	}
	t := now.UTC()
	o.milestones.DeliveredAt = &t
	if o.paymentMethod == PaymentMethodCash {
		o.paymentStatus = PaymentStatusCompleted
	}
	return nil
}

// Cancel moves a pending or confirmed order to cancelled, stamps
// cancelled_at and records the reason. Admin-initiated.
func (o *Order) Cancel(reason string, now time.Time) error {
	if reason == "" {
		return ErrCancellationReasonIsRequired
	}
	if err := o.apply(ActionCancel); err != nil {
		return err
	}
	t := now.UTC()
	o.milestones.CancelledAt = &t
	o.cancelReason = reason
	return nil
}

// Refund moves a delivered order to refunded and marks the payment refunded.
// Admin-initiated.
func (o *Order) Refund() error {
	if err := o.apply(ActionRefund); err != nil {
		return err
	}
	o.paymentStatus = PaymentStatusRefunded
	return nil
}

// Apply performs a forward transition identified by action. It dispatches to
// the dedicated methods so milestone stamping stays in one place per action.
// Actions that need extra input (assignment, OTP, cancellation reason) are
// rejected here and must go through their dedicated methods.
func (o *Order) Apply(action Action, now time.Time) error {
	switch action {
	case ActionConfirm:
		return o.Confirm(now)
	case ActionStartPreparing:
		return o.StartPreparing(now)
	case ActionMarkReady:
		return o.MarkReady()
	case ActionMarkPickedUp:
		return o.MarkPickedUp(now)
	case ActionStartDelivery:
		return o.StartDelivery()
	case ActionRefund:
		return o.Refund()
	default:
		return errs.NewValueIsInvalidError("action")
	}
}

func (o *Order) apply(action Action) error {
	next, err := o.status.Apply(action)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}
