package ports

import (
	"context"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates and their append-only credit ledger.
type PartnerRepository interface {
	// Add persists a new delivery partner aggregate.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no partner exists with the ID.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetForUpdate retrieves a partner aggregate with its row locked for the
	// duration of the surrounding transaction. Balance-changing flows must
	// load the partner through this method so that concurrent allocations
	// serialize on the row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// Update persists changes to an existing partner aggregate.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// AddTransaction appends a ledger entry. It must run in the same
	// transaction as the Update that persists the matching balance.
	AddTransaction(ctx context.Context, tx *partner.CreditTransaction) error
}
