package partner

import (
	"errors"
	"fmt"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

var (
	// ErrPartnerIsNotConstructed is returned when a DeliveryPartner was not
	// created through NewDeliveryPartner or RestoreDeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New(
		"DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner")

	// ErrInvalidAmount is the unwrap target for InvalidAmountError.
	ErrInvalidAmount = errors.New("ledger amount must be positive")

	// ErrPartnerUnavailable is the unwrap target for PartnerUnavailableError.
	ErrPartnerUnavailable = errors.New("delivery partner is not assignable")
)

// InvalidAmountError reports a non-positive amount passed to a ledger operation.
type InvalidAmountError struct {
	Amount string
}

// NewInvalidAmountError creates an InvalidAmountError for the given amount.
func NewInvalidAmountError(amount string) *InvalidAmountError {
	return &InvalidAmountError{Amount: amount}
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("ledger amount must be positive, got %s", e.Amount)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// PartnerUnavailableError reports an assignment attempt against a partner
// whose operational status does not allow taking orders.
type PartnerUnavailableError struct {
	PartnerID kernel.UUID
	Status    Status
}

// NewPartnerUnavailableError creates a PartnerUnavailableError.
func NewPartnerUnavailableError(partnerID kernel.UUID, status Status) *PartnerUnavailableError {
	return &PartnerUnavailableError{PartnerID: partnerID, Status: status}
}

func (e *PartnerUnavailableError) Error() string {
	return fmt.Sprintf("delivery partner %s is not assignable: status is %s", e.PartnerID, e.Status)
}

func (e *PartnerUnavailableError) Unwrap() error {
	return ErrPartnerUnavailable
}

// DeliveryPartner is the aggregate root for one delivery agent. It owns the
// partner's operational status, verification state and, most importantly,
// the signed credit balance together with the ledger entries that change it.
//
// Key invariants:
//   - Every balance change goes through Allocate and produces exactly one
//     CreditTransaction carrying the resulting balance
//   - Replaying the full transaction history in creation order reproduces
//     the stored balance
//   - Amounts are strictly positive; the direction comes from the entry type
//   - Negative balances are permitted (the partner owes the platform)
type DeliveryPartner struct {
	id              kernel.UUID
	userID          *kernel.UUID
	status          Status
	creditBalance   Balance
	isVerified      bool
	totalDeliveries int
	rating          float64

	guard guard.ConstructorGuard
}

// NewDeliveryPartner creates a freshly invited partner: offline, unverified,
// zero balance. The user reference stays nil until the invited partner
// signs up.
func NewDeliveryPartner(id kernel.UUID) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &DeliveryPartner{
		id:            id,
		status:        StatusOffline,
		creditBalance: ZeroBalance(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryPartner reconstructs a partner aggregate from persistent storage.
func RestoreDeliveryPartner(
	id kernel.UUID,
	userID *kernel.UUID,
	status Status,
	creditBalance Balance,
	isVerified bool,
	totalDeliveries int,
	rating float64,
) (*DeliveryPartner, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return nil, err
		}
	}
	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total deliveries", fmt.Errorf("%d is negative", totalDeliveries))
	}
	if rating < 0 || rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 0, 5)
	}

	return &DeliveryPartner{
		id:              id,
		userID:          userID,
		status:          status,
		creditBalance:   creditBalance,
		isVerified:      isVerified,
		totalDeliveries: totalDeliveries,
		rating:          rating,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the partner was created through a constructor.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID { return p.id }

// UserID returns the linked user account, or nil before signup.
func (p *DeliveryPartner) UserID() *kernel.UUID { return p.userID }

// Status returns the operational status.
func (p *DeliveryPartner) Status() Status { return p.status }

// CreditBalance returns the signed running balance.
func (p *DeliveryPartner) CreditBalance() Balance { return p.creditBalance }

// IsVerified reports whether an admin has verified the partner.
func (p *DeliveryPartner) IsVerified() bool { return p.isVerified }

// TotalDeliveries returns the number of completed deliveries.
func (p *DeliveryPartner) TotalDeliveries() int { return p.totalDeliveries }

// Rating returns the partner's average rating.
func (p *DeliveryPartner) Rating() float64 { return p.rating }

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// LinkUser attaches the signed-up user account to the invited partner.
func (p *DeliveryPartner) LinkUser(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	p.userID = &userID
	return nil
}

// SetStatus changes the operational status.
func (p *DeliveryPartner) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

// Verify marks the partner as verified by an admin.
func (p *DeliveryPartner) Verify() {
	p.isVerified = true
}

// EnsureAssignable returns PartnerUnavailableError unless the partner's
// current status allows taking a new order.
func (p *DeliveryPartner) EnsureAssignable() error {
	if !p.status.IsAssignable() {
		return NewPartnerUnavailableError(p.id, p.status)
	}
	return nil
}

// MarkAssigned flips the partner to busy after an order assignment.
func (p *DeliveryPartner) MarkAssigned() error {
	if err := p.EnsureAssignable(); err != nil {
		return err
	}
	p.status = StatusBusy
	return nil
}

// RecordDelivery counts a completed delivery and frees the partner for the
// next assignment.
func (p *DeliveryPartner) RecordDelivery() {
	p.totalDeliveries++
	p.status = StatusAvailable
}

// Allocate applies one balance-changing event to the partner and returns the
// ledger entry recording it. The amount must be strictly positive; the entry
// type determines the direction. The new balance may be negative.
//
// Allocate mutates only the in-memory aggregate. Persisting the updated
// balance and the returned CreditTransaction together, atomically, is the
// caller's responsibility; the repository layer does this inside a single
// database transaction with the partner row locked.
func (p *DeliveryPartner) Allocate(
	txType TransactionType,
	amount kernel.Money,
	description string,
	orderID *kernel.UUID,
	createdBy kernel.UUID,
	now time.Time,
) (*CreditTransaction, error) {
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount.String())
	}
	if err := createdBy.Validate(); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	delta := amount.Amount()
	if txType.Sign() < 0 {
		delta = delta.Neg()
	}
	newBalance := p.creditBalance.Add(delta)

	tx := newCreditTransaction(
		kernel.NewUUID(),
		p.id,
		txType,
		amount,
		newBalance,
		description,
		orderID,
		createdBy,
		now.UTC(),
	)
	p.creditBalance = newBalance
	return tx, nil
}
