package ports

import (
	"context"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
)

// BillRepository defines the persistence contract for delivery bill
// aggregates. The review transition uses the same conditional-write
// discipline as order transitions so a bill can be decided exactly once.
type BillRepository interface {
	// Add persists a newly submitted bill.
	Add(ctx context.Context, aggregate *bill.DeliveryBill) error

	// Get retrieves a bill aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no bill exists with the ID.
	Get(ctx context.Context, id kernel.UUID) (*bill.DeliveryBill, error)

	// UpdateInStatus persists the aggregate's current state on the condition
	// that the stored row is still in expectedStatus. Returns
	// ErrConcurrentModification when the condition does not hold.
	UpdateInStatus(ctx context.Context, aggregate *bill.DeliveryBill, expectedStatus bill.Status) error
}
