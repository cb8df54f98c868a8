package queries

import (
	"context"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPartnerTransactionsQueryHandler reads a partner's ledger history.
type GetPartnerTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerTransactionsQueryHandler creates a handler for ledger queries.
func NewGetPartnerTransactionsQueryHandler(db *gorm.DB) GetPartnerTransactionsQueryHandler {
	return GetPartnerTransactionsQueryHandler{db: db}
}

// Handle executes the query, newest entries first.
func (h GetPartnerTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerTransactionsQuery,
) ([]GetPartnerTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetPartnerTransactionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			transaction_type,
			amount,
			balance_after,
			description,
			order_id,
			created_at
		FROM credit_transactions
		WHERE delivery_partner_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, query.PartnerID().String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPartnerTransactionsQueryResponse
		var id uuid.UUID
		var orderID *uuid.UUID
		var txType string
		var amount, balanceAfter decimal.Decimal

		if err = rows.Scan(
			&id,
			&txType,
			&amount,
			&balanceAfter,
			&resp.Description,
			&orderID,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if orderID != nil {
			oid, oidErr := kernel.UUIDFromBytes(orderID[:])
			if oidErr != nil {
				return nil, oidErr
			}
			resp.OrderID = &oid
		}
		if resp.Type, err = partner.TransactionTypeFromString(txType); err != nil {
			return nil, err
		}
		resp.Amount = amount.String()
		resp.BalanceAfter = balanceAfter.String()

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
