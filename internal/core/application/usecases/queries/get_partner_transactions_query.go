package queries

import (
	"errors"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/pkg/guard"
)

var ErrGetPartnerTransactionsQueryIsNotConstructed = errors.New(
	"GetPartnerTransactionsQuery must be created via NewGetPartnerTransactionsQuery constructor",
)

const defaultTransactionsLimit = 50

// GetPartnerTransactionsQuery retrieves a partner's ledger history, newest
// first. Each row carries the balance the partner held immediately after the
// entry, so the history reads as a bank statement.
type GetPartnerTransactionsQuery struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetPartnerTransactionsQuery creates a query for a partner's ledger.
// A non-positive limit falls back to the default page size.
func NewGetPartnerTransactionsQuery(partnerID kernel.UUID, limit int) (GetPartnerTransactionsQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerTransactionsQuery{}, err
	}
	if limit <= 0 {
		limit = defaultTransactionsLimit
	}

	return GetPartnerTransactionsQuery{
		partnerID: partnerID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartnerTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerTransactionsQueryIsNotConstructed)
}

// PartnerID returns the partner whose ledger is read.
func (q GetPartnerTransactionsQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// Limit returns the maximum number of rows to return.
func (q GetPartnerTransactionsQuery) Limit() int {
	return q.limit
}

// GetPartnerTransactionsQueryResponse is one ledger statement row.
type GetPartnerTransactionsQueryResponse struct {
	ID           kernel.UUID
	Type         partner.TransactionType
	Amount       string
	BalanceAfter string
	Description  string
	OrderID      *kernel.UUID
	CreatedAt    time.Time
}
