package services

import (
	"errors"
	"fmt"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/pkg/errs"
)

// ErrAccessDenied is the unwrap target for AccessDeniedError.
var ErrAccessDenied = errors.New("actor is not allowed to perform this operation")

// AccessDeniedError reports an operation attempted by an actor whose role
// does not permit it.
type AccessDeniedError struct {
	ActorID   kernel.UUID
	Role      Role
	Operation Operation
}

// NewAccessDeniedError creates an AccessDeniedError.
func NewAccessDeniedError(actorID kernel.UUID, role Role, op Operation) *AccessDeniedError {
	return &AccessDeniedError{ActorID: actorID, Role: role, Operation: op}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("actor %s with role %s is not allowed to perform %s", e.ActorID, e.Role, e.Operation)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// Role identifies the kind of actor calling into the system.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota
	// RoleCustomer places and cancels orders.
	RoleCustomer
	// RoleVendor prepares orders in the store.
	RoleVendor
	// RoleDeliveryPartner carries orders and submits expense bills.
	RoleDeliveryPartner
	// RoleAdmin operates the platform back office.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:         "unknown",
		RoleCustomer:        "customer",
		RoleVendor:          "vendor",
		RoleDeliveryPartner: "delivery_partner",
		RoleAdmin:           "admin",
	}
}

// Validate checks if the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", int(r)))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", int(r)))
	}
	return nil
}

// String returns the persisted name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a persisted role name back into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// Operation names an action subject to access control.
type Operation string

const (
	OpCreateOrder        Operation = "order.create"
	OpConfirmOrder       Operation = "order.confirm"
	OpStartPreparing     Operation = "order.start_preparing"
	OpMarkReady          Operation = "order.mark_ready"
	OpAssignPartner      Operation = "order.assign_partner"
	OpMarkPickedUp       Operation = "order.mark_picked_up"
	OpStartDelivery      Operation = "order.start_delivery"
	OpCompleteDelivery   Operation = "order.complete_delivery"
	OpCancelOrder        Operation = "order.cancel"
	OpRefundOrder        Operation = "order.refund"
	OpAllocateCredit     Operation = "ledger.allocate"
	OpViewLedger         Operation = "ledger.view"
	OpViewPlatformLedger Operation = "ledger.view_platform"
	OpSubmitBill         Operation = "bill.submit"
	OpReviewBill         Operation = "bill.review"
)

// AccessPolicy decides which roles may perform which operations. Admins can
// drive the whole order lifecycle from the back office; the other roles get
// only the edges that belong to them.
type AccessPolicy struct {
	allowed map[Operation][]Role
}

// NewAccessPolicy creates the marketplace access policy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{
		allowed: map[Operation][]Role{
			OpCreateOrder:        {RoleCustomer, RoleAdmin},
			OpConfirmOrder:       {RoleVendor, RoleAdmin},
			OpStartPreparing:     {RoleVendor, RoleAdmin},
			OpMarkReady:          {RoleVendor, RoleAdmin},
			OpAssignPartner:      {RoleAdmin},
			OpMarkPickedUp:       {RoleDeliveryPartner, RoleAdmin},
			OpStartDelivery:      {RoleDeliveryPartner, RoleAdmin},
			OpCompleteDelivery:   {RoleDeliveryPartner, RoleAdmin},
			OpCancelOrder:        {RoleCustomer, RoleAdmin},
			OpRefundOrder:        {RoleAdmin},
			OpAllocateCredit:     {RoleAdmin},
			OpViewLedger:         {RoleDeliveryPartner, RoleAdmin},
			OpViewPlatformLedger: {RoleAdmin},
			OpSubmitBill:         {RoleDeliveryPartner},
			OpReviewBill:         {RoleAdmin},
		},
	}
}

// Authorize returns AccessDeniedError unless the actor's role may perform
// the operation.
func (p AccessPolicy) Authorize(actor Actor, op Operation) error {
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}
	for _, role := range p.allowed[op] {
		if role == actor.Role {
			return nil
		}
	}
	return NewAccessDeniedError(actor.ID, actor.Role, op)
}

// OperationForAction maps an order lifecycle action to its access-controlled
// operation name.
func OperationForAction(action order.Action) (Operation, error) {
	switch action {
	case order.ActionConfirm:
		return OpConfirmOrder, nil
	case order.ActionStartPreparing:
		return OpStartPreparing, nil
	case order.ActionMarkReady:
		return OpMarkReady, nil
	case order.ActionAssignPartner:
		return OpAssignPartner, nil
	case order.ActionMarkPickedUp:
		return OpMarkPickedUp, nil
	case order.ActionStartDelivery:
		return OpStartDelivery, nil
	case order.ActionCompleteDelivery:
		return OpCompleteDelivery, nil
	case order.ActionCancel:
		return OpCancelOrder, nil
	case order.ActionRefund:
		return OpRefundOrder, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%d is not a valid action", int(action)))
	}
}
