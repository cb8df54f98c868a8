package commands

import (
	"errors"
	"fmt"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

var ErrReviewBillCommandIsNotConstructed = errors.New(
	"ReviewBillCommand must be created via NewReviewBillCommand constructor",
)

// ReviewBillCommand represents an admin's single-use decision on a pending
// expense bill.
type ReviewBillCommand struct { //nolint:recvcheck //using for validation
	billID     kernel.UUID
	decision   bill.Status
	reviewerID kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewReviewBillCommand creates a command to approve or reject a bill.
func NewReviewBillCommand(
	billID kernel.UUID,
	decision bill.Status,
	reviewerID kernel.UUID,
	notes string,
) (ReviewBillCommand, error) {
	cmd := ReviewBillCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBillID(billID),
		cmd.setDecision(decision),
		cmd.setReviewerID(reviewerID),
	); err != nil {
		return ReviewBillCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewBillCommand) Validate() error {
	return c.guard.Validate(ErrReviewBillCommandIsNotConstructed)
}

// BillID returns the bill under review.
func (c ReviewBillCommand) BillID() kernel.UUID {
	return c.billID
}

// Decision returns the review outcome, approved or rejected.
func (c ReviewBillCommand) Decision() bill.Status {
	return c.decision
}

// ReviewerID returns the deciding admin.
func (c ReviewBillCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Notes returns the reviewer's notes.
func (c ReviewBillCommand) Notes() string {
	return c.notes
}

func (c *ReviewBillCommand) setBillID(billID kernel.UUID) error {
	if err := billID.Validate(); err != nil {
		return err
	}

	c.billID = billID
	return nil
}

func (c *ReviewBillCommand) setDecision(decision bill.Status) error {
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidErrorWithCause(
			"decision", fmt.Errorf("%s is not a review decision", decision))
	}

	c.decision = decision
	return nil
}

func (c *ReviewBillCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	c.reviewerID = reviewerID
	return nil
}
