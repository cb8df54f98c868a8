package bill

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

var (
	// ErrBillIsNotConstructed is returned when a DeliveryBill was not
	// created through NewDeliveryBill or RestoreDeliveryBill.
	ErrBillIsNotConstructed = errors.New(
		"DeliveryBill must be created via NewDeliveryBill or RestoreDeliveryBill")

	// ErrAlreadyReviewed is the unwrap target for AlreadyReviewedError.
	ErrAlreadyReviewed = errors.New("delivery bill has already been reviewed")

	// ErrImageRefIsRequired is returned when a bill is submitted without a
	// receipt image.
	ErrImageRefIsRequired = errors.New("delivery bill requires a receipt image")
)

// AlreadyReviewedError reports a second review attempt on a bill that already
// carries a decision.
type AlreadyReviewedError struct {
	BillID kernel.UUID
	Status Status
}

// NewAlreadyReviewedError creates an AlreadyReviewedError.
func NewAlreadyReviewedError(billID kernel.UUID, status Status) *AlreadyReviewedError {
	return &AlreadyReviewedError{BillID: billID, Status: status}
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("delivery bill %s has already been reviewed: status is %s", e.BillID, e.Status)
}

func (e *AlreadyReviewedError) Unwrap() error {
	return ErrAlreadyReviewed
}

// DeliveryBill is a delivery partner's reimbursement claim for an
// out-of-pocket expense (fuel, toll) backed by a photographed receipt.
//
// A bill is created pending with no ledger effect and is mutated exactly
// once: an admin's Review stamps the decision, the reviewer and the review
// time; any later review attempt fails with AlreadyReviewedError and leaves
// the bill untouched.
type DeliveryBill struct {
	id          kernel.UUID
	partnerID   kernel.UUID
	orderID     *kernel.UUID
	amount      kernel.Money
	imageURL    string
	description string
	status      Status
	adminNotes  string
	reviewedBy  *kernel.UUID
	reviewedAt  *time.Time
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryBill creates a pending bill submitted by a partner. The amount
// must be strictly positive and the receipt image is mandatory.
func NewDeliveryBill(
	id kernel.UUID,
	partnerID kernel.UUID,
	orderID *kernel.UUID,
	amount kernel.Money,
	imageURL string,
	description string,
	now time.Time,
) (*DeliveryBill, error) {
	if err := errors.Join(
		id.Validate(),
		partnerID.Validate(),
	); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if !amount.IsPositive() {
		return nil, partner.NewInvalidAmountError(amount.String())
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, ErrImageRefIsRequired
	}

	return &DeliveryBill{
		id:          id,
		partnerID:   partnerID,
		orderID:     orderID,
		amount:      amount,
		imageURL:    imageURL,
		description: description,
		status:      StatusPending,
		createdAt:   now.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryBill reconstructs a bill aggregate from persistent storage.
func RestoreDeliveryBill(
	id kernel.UUID,
	partnerID kernel.UUID,
	orderID *kernel.UUID,
	amount kernel.Money,
	imageURL string,
	description string,
	status Status,
	adminNotes string,
	reviewedBy *kernel.UUID,
	reviewedAt *time.Time,
	createdAt time.Time,
) (*DeliveryBill, error) {
	if err := errors.Join(
		id.Validate(),
		partnerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if status.IsDecision() && reviewedBy == nil {
		return nil, errs.NewValueIsRequiredError("reviewed by")
	}
	if reviewedBy != nil {
		if err := reviewedBy.Validate(); err != nil {
			return nil, err
		}
	}

	return &DeliveryBill{
		id:          id,
		partnerID:   partnerID,
		orderID:     orderID,
		amount:      amount,
		imageURL:    imageURL,
		description: description,
		status:      status,
		adminNotes:  adminNotes,
		reviewedBy:  reviewedBy,
		reviewedAt:  reviewedAt,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the bill was created through a constructor.
func (b *DeliveryBill) Validate() error {
	if b == nil {
		return ErrBillIsNotConstructed
	}
	return b.guard.Validate(ErrBillIsNotConstructed)
}

// ID returns the bill's unique identifier.
func (b *DeliveryBill) ID() kernel.UUID { return b.id }

// PartnerID returns the partner who submitted the claim.
func (b *DeliveryBill) PartnerID() kernel.UUID { return b.partnerID }

// OrderID returns the related order, or nil if the expense is not tied to one.
func (b *DeliveryBill) OrderID() *kernel.UUID { return b.orderID }

// Amount returns the claimed amount.
func (b *DeliveryBill) Amount() kernel.Money { return b.amount }

// ImageURL returns the receipt image reference.
func (b *DeliveryBill) ImageURL() string { return b.imageURL }

// Description returns the free-text expense description.
func (b *DeliveryBill) Description() string { return b.description }

// Status returns the review state of the bill.
func (b *DeliveryBill) Status() Status { return b.status }

// AdminNotes returns the notes left by the reviewer.
func (b *DeliveryBill) AdminNotes() string { return b.adminNotes }

// ReviewedBy returns the reviewing admin, or nil while pending.
func (b *DeliveryBill) ReviewedBy() *kernel.UUID { return b.reviewedBy }

// ReviewedAt returns the review time, or nil while pending.
func (b *DeliveryBill) ReviewedAt() *time.Time { return b.reviewedAt }

// CreatedAt returns when the bill was submitted.
func (b *DeliveryBill) CreatedAt() time.Time { return b.createdAt }

// IsEqual compares two bills by their unique identifiers.
func (b *DeliveryBill) IsEqual(other *DeliveryBill) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// Review applies the admin's decision to a pending bill. The decision must
// be approved or rejected. A bill can be reviewed exactly once: if the bill
// already carries a decision, Review fails with AlreadyReviewedError and
// changes nothing.
func (b *DeliveryBill) Review(decision Status, reviewerID kernel.UUID, notes string, now time.Time) error {
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidErrorWithCause(
			"decision", fmt.Errorf("%s is not a review decision", decision))
	}
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	if b.status != StatusPending {
		return NewAlreadyReviewedError(b.id, b.status)
	}

	reviewedAt := now.UTC()
	b.status = decision
	b.adminNotes = notes
	b.reviewedBy = &reviewerID
	b.reviewedAt = &reviewedAt
	return nil
}
