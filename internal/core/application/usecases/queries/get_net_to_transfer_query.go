package queries

import (
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/guard"
)

var ErrGetNetToTransferQueryIsNotConstructed = errors.New(
	"GetNetToTransferQuery must be created via NewGetNetToTransferQuery constructor",
)

// GetNetToTransferQuery computes the settlement figure for one partner:
// cash collected from delivered cash orders minus approved bill amounts.
// This is a read-time report; it writes no ledger entries and is computed
// independently of the credit_transactions history.
type GetNetToTransferQuery struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNetToTransferQuery creates a query for a partner's settlement figure.
func NewGetNetToTransferQuery(partnerID kernel.UUID) (GetNetToTransferQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetNetToTransferQuery{}, err
	}

	return GetNetToTransferQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNetToTransferQuery) Validate() error {
	return q.guard.Validate(ErrGetNetToTransferQueryIsNotConstructed)
}

// PartnerID returns the partner being settled.
func (q GetNetToTransferQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// GetNetToTransferQueryResponse breaks the settlement figure down into its
// two sides. NetToTransfer is CashCollected minus ApprovedBills; positive
// means the partner hands cash to the platform.
type GetNetToTransferQueryResponse struct {
	PartnerID     kernel.UUID
	CashCollected string
	ApprovedBills string
	NetToTransfer string
}
