package queries

import (
	"context"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so the back
// office sees the longest-waiting orders on top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			customer_id,
			vendor_id,
			delivery_partner_id,
			total_amount,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?, ?)
		ORDER BY created_at
	`, order.StatusDelivered.String(), order.StatusCancelled.String(), order.StatusRefunded.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, customerID, vendorID uuid.UUID
		var partnerID *uuid.UUID
		var status string
		var total decimal.Decimal

		if err = rows.Scan(
			&id,
			&resp.Number,
			&status,
			&customerID,
			&vendorID,
			&partnerID,
			&total,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if resp.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
			return nil, err
		}
		if partnerID != nil {
			pid, pidErr := kernel.UUIDFromBytes(partnerID[:])
			if pidErr != nil {
				return nil, pidErr
			}
			resp.PartnerID = &pid
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		resp.Total = total.String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
