// Package partnerrepo persists delivery partner aggregates and their
// append-only credit ledger.
package partnerrepo

import (
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerDTO represents the database structure for delivery partner aggregates.
// The credit_balance column is the cached running total; the authoritative
// history lives in credit_transactions.
type PartnerDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Status          string          `gorm:"size:16;index"`
	CreditBalance   decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsVerified      bool
	TotalDeliveries int
	Rating          float64
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// CreditTransactionDTO represents one immutable ledger entry. Rows are only
// ever inserted; balance_after freezes the running total at entry time.
type CreditTransactionDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeliveryPartnerID uuid.UUID       `gorm:"type:uuid;index"`
	TransactionType   string          `gorm:"size:16"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2)"`
	BalanceAfter      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Description       string
	OrderID           *uuid.UUID `gorm:"type:uuid"`
	CreatedBy         uuid.UUID  `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (CreditTransactionDTO) TableName() string {
	return "credit_transactions"
}

func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return PartnerDTO{
		ID:              aggregate.ID().Bytes(),
		UserID:          userID,
		Status:          aggregate.Status().String(),
		CreditBalance:   aggregate.CreditBalance().Amount(),
		IsVerified:      aggregate.IsVerified(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		Rating:          aggregate.Rating(),
	}
}

func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	status, err := partner.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return partner.RestoreDeliveryPartner(
		id,
		userID,
		status,
		partner.NewBalance(dto.CreditBalance),
		dto.IsVerified,
		dto.TotalDeliveries,
		dto.Rating,
	)
}

func transactionFromDomain(tx *partner.CreditTransaction) CreditTransactionDTO {
	var orderID *uuid.UUID
	if id := tx.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return CreditTransactionDTO{
		ID:                tx.ID().Bytes(),
		DeliveryPartnerID: tx.PartnerID().Bytes(),
		TransactionType:   tx.Type().String(),
		Amount:            tx.Amount().Amount(),
		BalanceAfter:      tx.BalanceAfter().Amount(),
		Description:       tx.Description(),
		OrderID:           orderID,
		CreatedBy:         tx.CreatedBy().Bytes(),
		CreatedAt:         tx.CreatedAt(),
	}
}
