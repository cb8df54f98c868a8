package partner

import (
	"fmt"

	"gromart/internal/pkg/errs"
)

// Status represents the operational availability of a delivery partner.
// It is set by the partner themselves (going online, taking a break) and by
// the fulfillment flow (busy while carrying an order).
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota
	// StatusOffline means the partner is not working.
	StatusOffline
	// StatusAvailable means the partner can be assigned an order.
	StatusAvailable
	// StatusBusy means the partner is carrying an order.
	StatusBusy
	// StatusOnBreak means the partner is online but paused.
	StatusOnBreak
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusOffline:   "offline",
		StatusAvailable: "available",
		StatusBusy:      "busy",
		StatusOnBreak:   "on_break",
	}
}

// Validate checks if the Status is one of the defined operational states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("partner status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("partner status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the persisted name of the status. Implements fmt.Stringer.
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
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"partner status", fmt.Errorf("%q is not a valid status", s))
}

// IsAssignable reports whether a partner in this status may be handed a new
// order. Only available partners are assignable; busy, offline and on-break
// partners are not.
func (s Status) IsAssignable() bool {
	return s == StatusAvailable
}
