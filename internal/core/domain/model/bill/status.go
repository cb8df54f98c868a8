package bill

import (
	"fmt"

	"gromart/internal/pkg/errs"
)

// Status represents the review state of a delivery bill. A bill starts
// pending and moves exactly once to approved or rejected.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota
	// StatusPending means the bill awaits admin review.
	StatusPending
	// StatusApproved means an admin accepted the claim.
	StatusApproved
	// StatusRejected means an admin declined the claim.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusRejected: "rejected",
	}
}

// Validate checks if the Status is one of the defined review states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("bill status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("bill status", fmt.Errorf("%d is not a valid status", int(s)))
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
		"bill status", fmt.Errorf("%q is not a valid status", s))
}

// IsDecision reports whether the status is a valid outcome of a review.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}
