package order

import (
	"errors"
	"fmt"

	"gromart/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Use errors.Is(err, ErrInvalidTransition) to classify transition failures.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a single transition table so that
// the legal next state for every action is defined in exactly one place.
//
// State transitions:
//
//	Pending → Confirmed → Preparing → ReadyForPickup → AssignedToDelivery
//	       → PickedUp → OutForDelivery → Delivered (→ Refunded)
//
// Cancelled is reachable from Pending and Confirmed. Delivered, Cancelled
// and Refunded are absorbing terminal states.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status set at order creation.
	StatusPending

	// StatusConfirmed indicates the vendor has accepted the order.
	StatusConfirmed

	// StatusPreparing indicates the vendor is packing the order.
	StatusPreparing

	// StatusReadyForPickup indicates the order awaits a delivery partner.
	StatusReadyForPickup

	// StatusAssignedToDelivery indicates a delivery partner has been assigned.
	StatusAssignedToDelivery

	// StatusPickedUp indicates the partner has collected the order.
	StatusPickedUp

	// StatusOutForDelivery indicates the order is en route to the customer.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal state, gated by the OTP.
	StatusDelivered

	// StatusCancelled is the terminal state for orders cancelled before preparation.
	StatusCancelled

	// StatusRefunded is the terminal state for delivered orders refunded by an admin.
	StatusRefunded
)

// Action identifies one lifecycle operation on an order.
// The pair (current Status, Action) is looked up in the transition table;
// any pair not present is rejected.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionConfirm is the vendor accepting the order.
	ActionConfirm

	// ActionStartPreparing is the vendor beginning preparation.
	ActionStartPreparing

	// ActionMarkReady is the vendor declaring the order ready for pickup.
	ActionMarkReady

	// ActionAssignPartner is the admin assigning a delivery partner.
	ActionAssignPartner

	// ActionMarkPickedUp is the partner collecting the order from the vendor.
	ActionMarkPickedUp

	// ActionStartDelivery is the partner leaving for the customer.
	ActionStartDelivery

	// ActionCompleteDelivery is the OTP-gated final handoff.
	ActionCompleteDelivery

	// ActionCancel cancels an order that has not yet been prepared.
	ActionCancel

	// ActionRefund marks a delivered order as refunded.
	ActionRefund
)

type transitionKey struct {
	from   Status
	action Action
}

// transitions is the single source of truth for legal lifecycle moves.
// Every (state, action) pair absent from this table is an invalid transition.
var transitions = map[transitionKey]Status{
	{StatusPending, ActionConfirm}:                 StatusConfirmed,
	{StatusConfirmed, ActionStartPreparing}:        StatusPreparing,
	{StatusPreparing, ActionMarkReady}:             StatusReadyForPickup,
	{StatusReadyForPickup, ActionAssignPartner}:    StatusAssignedToDelivery,
	{StatusAssignedToDelivery, ActionMarkPickedUp}: StatusPickedUp,
	{StatusPickedUp, ActionStartDelivery}:          StatusOutForDelivery,
	{StatusOutForDelivery, ActionCompleteDelivery}: StatusDelivered,
	{StatusPending, ActionCancel}:                  StatusCancelled,
	{StatusConfirmed, ActionCancel}:                StatusCancelled,
	{StatusDelivered, ActionRefund}:                StatusRefunded,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "unknown",
		StatusPending:            "pending",
		StatusConfirmed:          "confirmed",
		StatusPreparing:          "preparing",
		StatusReadyForPickup:     "ready_for_pickup",
		StatusAssignedToDelivery: "assigned_to_delivery",
		StatusPickedUp:           "picked_up",
		StatusOutForDelivery:     "out_for_delivery",
		StatusDelivered:          "delivered",
		StatusCancelled:          "cancelled",
		StatusRefunded:           "refunded",
	}
}

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:          "unknown",
		ActionConfirm:          "confirm",
		ActionStartPreparing:   "start_preparing",
		ActionMarkReady:        "mark_ready",
		ActionAssignPartner:    "assign_partner",
		ActionMarkPickedUp:     "mark_picked_up",
		ActionStartDelivery:    "start_delivery",
		ActionCompleteDelivery: "complete_delivery",
		ActionCancel:           "cancel",
		ActionRefund:           "refund",
	}
}

// InvalidTransitionError reports an action applied to an order whose current
// status does not permit it.
type InvalidTransitionError struct {
	From   Status
	Action Action
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from Status, action Action) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: cannot %s from %s", e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Validate checks if the Status value is one of the defined lifecycle states.
// StatusUnknown and any other values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a persisted status name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status is absorbing. A delivered order can
// still be refunded, but no action moves it back into the active lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// Apply returns the status that results from performing action in the
// current status. Returns InvalidTransitionError if the transition table
// does not contain the pair.
func (s Status) Apply(action Action) (Status, error) {
	next, ok := transitions[transitionKey{from: s, action: action}]
	if !ok {
		return StatusUnknown, NewInvalidTransitionError(s, action)
	}
	return next, nil
}

// CanApply reports whether action is legal in the current status.
func (s Status) CanApply(action Action) bool {
	_, ok := transitions[transitionKey{from: s, action: action}]
	return ok
}

// String returns the wire name of the action, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ActionFromString parses a wire action name back into an Action.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

// Validate checks if the Action value is one of the defined lifecycle actions.
func (a Action) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", int(a)))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", int(a)))
	}
	return nil
}
