package queries

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/guard"
)

var ErrGetCreditOutstandingQueryIsNotConstructed = errors.New(
	"GetCreditOutstandingQuery must be created via NewGetCreditOutstandingQuery constructor",
)

// GetCreditOutstandingQuery computes a partner's outstanding balance by
// summing the signed ledger history. The figure must match the balance
// stored on the partner row; the audit job checks exactly that.
type GetCreditOutstandingQuery struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCreditOutstandingQuery creates a query for a partner's outstanding credit.
func NewGetCreditOutstandingQuery(partnerID kernel.UUID) (GetCreditOutstandingQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetCreditOutstandingQuery{}, err
	}

	return GetCreditOutstandingQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCreditOutstandingQuery) Validate() error {
	return q.guard.Validate(ErrGetCreditOutstandingQueryIsNotConstructed)
}

// PartnerID returns the partner whose outstanding credit is computed.
func (q GetCreditOutstandingQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// GetCreditOutstandingQueryResponse carries the ledger-derived balance.
// Negative means the partner owes the platform.
type GetCreditOutstandingQueryResponse struct {
	PartnerID   kernel.UUID
	Outstanding string
}
