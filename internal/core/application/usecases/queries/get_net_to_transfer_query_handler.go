package queries

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetNetToTransferQueryHandler computes the cash settlement report for a
// partner from delivered cash orders and approved expense bills.
type GetNetToTransferQueryHandler struct {
	db *gorm.DB
}

// NewGetNetToTransferQueryHandler creates a handler for settlement queries.
func NewGetNetToTransferQueryHandler(db *gorm.DB) GetNetToTransferQueryHandler {
	return GetNetToTransferQueryHandler{db: db}
}

// Handle executes the query.
func (h GetNetToTransferQueryHandler) Handle(
	ctx context.Context,
	query GetNetToTransferQuery,
) (GetNetToTransferQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNetToTransferQueryResponse{}, err
	}

	partnerID := query.PartnerID().String()

	var cashCollected decimal.Decimal
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE delivery_partner_id = ?
		  AND status = 'delivered'
		  AND payment_method = 'cash'
	`, partnerID).Row()
	if err := row.Scan(&cashCollected); err != nil {
		return GetNetToTransferQueryResponse{}, err
	}

	var approvedBills decimal.Decimal
	row = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM delivery_bills
		WHERE delivery_partner_id = ?
		  AND status = 'approved'
	`, partnerID).Row()
	if err := row.Scan(&approvedBills); err != nil {
		return GetNetToTransferQueryResponse{}, err
	}

	return GetNetToTransferQueryResponse{
		PartnerID:     query.PartnerID(),
		CashCollected: cashCollected.String(),
		ApprovedBills: approvedBills.String(),
		NetToTransfer: cashCollected.Sub(approvedBills).String(),
	}, nil
}
