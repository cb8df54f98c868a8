package queries

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCreditOutstandingQueryHandler sums a partner's signed ledger history.
type GetCreditOutstandingQueryHandler struct {
	db *gorm.DB
}

// NewGetCreditOutstandingQueryHandler creates a handler for outstanding-credit queries.
func NewGetCreditOutstandingQueryHandler(db *gorm.DB) GetCreditOutstandingQueryHandler {
	return GetCreditOutstandingQueryHandler{db: db}
}

// Handle executes the query. Credit and refund entries count positive, debit
// and penalty entries negative; a partner with no history reports zero.
func (h GetCreditOutstandingQueryHandler) Handle(
	ctx context.Context,
	query GetCreditOutstandingQuery,
) (GetCreditOutstandingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCreditOutstandingQueryResponse{}, err
	}

	var outstanding decimal.Decimal
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(
			CASE WHEN transaction_type IN ('credit', 'refund') THEN amount ELSE -amount END
		), 0)
		FROM credit_transactions
		WHERE delivery_partner_id = ?
	`, query.PartnerID().String()).Row()

	if err := row.Scan(&outstanding); err != nil {
		return GetCreditOutstandingQueryResponse{}, err
	}

	return GetCreditOutstandingQueryResponse{
		PartnerID:   query.PartnerID(),
		Outstanding: outstanding.String(),
	}, nil
}
