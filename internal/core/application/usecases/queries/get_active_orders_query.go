// Package queries contains read-only operations over the persistent store.
// Query handlers bypass the aggregates and read with raw SQL, returning
// flat response structs shaped for their callers.
package queries

import (
	"errors"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still in flight: everything not
// delivered, cancelled or refunded. Used by the back office to monitor the
// fulfillment pipeline.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one in-flight order row.
type GetActiveOrdersQueryResponse struct {
	ID         kernel.UUID
	Number     string
	Status     order.Status
	CustomerID kernel.UUID
	VendorID   kernel.UUID
	PartnerID  *kernel.UUID
	Total      string
	CreatedAt  time.Time
}
