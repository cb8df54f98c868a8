package queries

import (
	"errors"

	"gromart/internal/pkg/guard"
)

var ErrGetPlatformCreditOutstandingQueryIsNotConstructed = errors.New(
	"GetPlatformCreditOutstandingQuery must be created via NewGetPlatformCreditOutstandingQuery constructor",
)

// GetPlatformCreditOutstandingQuery sums the cached balances of every
// delivery partner into one platform-wide exposure figure. Used by the back
// office to see how much credit is out at once.
type GetPlatformCreditOutstandingQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPlatformCreditOutstandingQuery creates a query for the platform-wide
// outstanding credit.
func NewGetPlatformCreditOutstandingQuery() GetPlatformCreditOutstandingQuery {
	return GetPlatformCreditOutstandingQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPlatformCreditOutstandingQuery) Validate() error {
	return q.guard.Validate(ErrGetPlatformCreditOutstandingQueryIsNotConstructed)
}

// GetPlatformCreditOutstandingQueryResponse carries the sum of all partner
// balances. Negative means partners collectively owe the platform.
type GetPlatformCreditOutstandingQueryResponse struct {
	Outstanding string
}
