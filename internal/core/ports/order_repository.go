package ports

import (
	"context"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lifecycle transitions are persisted with a conditional write so that two
// concurrent transitions on the same order cannot both succeed.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items.
	// Returns errs.ObjectNotFoundError if no order exists with the ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateInStatus persists the aggregate's current state on the condition
	// that the stored row is still in expectedStatus. If the condition does
	// not hold the write touches nothing and ErrConcurrentModification is
	// returned; the caller must re-read and retry.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error
}
