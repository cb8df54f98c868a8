package queries

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPlatformCreditOutstandingQueryHandler sums the cached balance column
// across all delivery partner rows.
type GetPlatformCreditOutstandingQueryHandler struct {
	db *gorm.DB
}

// NewGetPlatformCreditOutstandingQueryHandler creates a handler for
// platform-wide outstanding-credit queries.
func NewGetPlatformCreditOutstandingQueryHandler(db *gorm.DB) GetPlatformCreditOutstandingQueryHandler {
	return GetPlatformCreditOutstandingQueryHandler{db: db}
}

// Handle executes the query. A platform with no partners reports zero.
func (h GetPlatformCreditOutstandingQueryHandler) Handle(
	ctx context.Context,
	query GetPlatformCreditOutstandingQuery,
) (GetPlatformCreditOutstandingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlatformCreditOutstandingQueryResponse{}, err
	}

	var outstanding decimal.Decimal
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(credit_balance), 0)
		FROM delivery_partners
	`).Row()

	if err := row.Scan(&outstanding); err != nil {
		return GetPlatformCreditOutstandingQueryResponse{}, err
	}

	return GetPlatformCreditOutstandingQueryResponse{
		Outstanding: outstanding.String(),
	}, nil
}
