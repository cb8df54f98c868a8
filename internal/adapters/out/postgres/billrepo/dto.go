// Package billrepo persists delivery bill aggregates.
package billrepo

import (
	"time"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillDTO represents the database structure for delivery bill aggregates.
type BillDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryPartnerID uuid.UUID  `gorm:"type:uuid;index"`
	OrderID           *uuid.UUID `gorm:"type:uuid"`
	BillImageURL      string
	Amount            decimal.Decimal `gorm:"type:numeric(12,2)"`
	Description       string
	Status            string `gorm:"size:16;index"`
	AdminNotes        string
	ReviewedBy        *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt        *time.Time
	CreatedAt         time.Time
}

// TableName specifies the database table name for bill entities.
func (BillDTO) TableName() string {
	return "delivery_bills"
}

func fromDomain(aggregate *bill.DeliveryBill) BillDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}
	var reviewedBy *uuid.UUID
	if id := aggregate.ReviewedBy(); id != nil {
		raw := id.Bytes()
		reviewedBy = &raw
	}

	return BillDTO{
		ID:                aggregate.ID().Bytes(),
		DeliveryPartnerID: aggregate.PartnerID().Bytes(),
		OrderID:           orderID,
		BillImageURL:      aggregate.ImageURL(),
		Amount:            aggregate.Amount().Amount(),
		Description:       aggregate.Description(),
		Status:            aggregate.Status().String(),
		AdminNotes:        aggregate.AdminNotes(),
		ReviewedBy:        reviewedBy,
		ReviewedAt:        aggregate.ReviewedAt(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

func toDomain(dto BillDTO) (*bill.DeliveryBill, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := kernel.UUIDFromBytes(dto.DeliveryPartnerID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}
	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		rID, reviewErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if reviewErr != nil {
			return nil, reviewErr
		}
		reviewedBy = &rID
	}

	status, err := bill.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return bill.RestoreDeliveryBill(
		id,
		partnerID,
		orderID,
		amount,
		dto.BillImageURL,
		dto.Description,
		status,
		dto.AdminNotes,
		reviewedBy,
		dto.ReviewedAt,
		dto.CreatedAt,
	)
}
