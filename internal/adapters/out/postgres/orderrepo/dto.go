// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The delivery address is frozen as a JSON snapshot; the monetary breakdown
// is stored in numeric columns; the lifecycle milestones are nullable
// timestamps set at most once.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber        string          `gorm:"uniqueIndex;size:32"`
	CustomerID         uuid.UUID       `gorm:"type:uuid;index"`
	VendorID           uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryPartnerID  *uuid.UUID      `gorm:"type:uuid;index"`
	Status             string          `gorm:"size:32;index"`
	PaymentMethod      string          `gorm:"size:16"`
	PaymentStatus      string          `gorm:"size:16"`
	DeliveryOtp        string          `gorm:"size:8"`
	DeliveryAddress    datatypes.JSON
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(12,2)"`
	PlatformFee        decimal.Decimal `gorm:"type:numeric(12,2)"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(12,2)"`
	TaxAmount          decimal.Decimal `gorm:"type:numeric(12,2)"`
	TipAmount          decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	ConfirmedAt        *time.Time
	PreparingAt        *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one immutable order line. The product details are
// frozen as a JSON snapshot taken at order time.
type OrderItemDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;index"`
	ProductID       *uuid.UUID `gorm:"type:uuid"`
	ProductSnapshot datatypes.JSON
	Quantity        int
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2)"`
	MRP             decimal.Decimal `gorm:"type:numeric(12,2)"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	addressJSON, err := json.Marshal(aggregate.Address())
	if err != nil {
		return OrderDTO{}, err
	}

	var partnerID *uuid.UUID
	if id := aggregate.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		dto, itemErr := itemFromDomain(aggregate.ID(), item)
		if itemErr != nil {
			return OrderDTO{}, itemErr
		}
		items = append(items, dto)
	}

	milestones := aggregate.Milestones()
	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderNumber:        aggregate.Number(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		VendorID:           aggregate.VendorID().Bytes(),
		DeliveryPartnerID:  partnerID,
		Status:             aggregate.Status().String(),
		PaymentMethod:      aggregate.PaymentMethod().String(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		DeliveryOtp:        aggregate.DeliveryOtp(),
		DeliveryAddress:    datatypes.JSON(addressJSON),
		Subtotal:           aggregate.Subtotal().Amount(),
		DeliveryFee:        aggregate.DeliveryFee().Amount(),
		PlatformFee:        aggregate.PlatformFee().Amount(),
		DiscountAmount:     aggregate.Discount().Amount(),
		TaxAmount:          aggregate.Tax().Amount(),
		TipAmount:          aggregate.Tip().Amount(),
		TotalAmount:        aggregate.Total().Amount(),
		ConfirmedAt:        milestones.ConfirmedAt,
		PreparingAt:        milestones.PreparingAt,
		PickedUpAt:         milestones.PickedUpAt,
		DeliveredAt:        milestones.DeliveredAt,
		CancelledAt:        milestones.CancelledAt,
		CancellationReason: aggregate.CancellationReason(),
		CreatedAt:          aggregate.CreatedAt(),
		Items:              items,
	}, nil
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) (OrderItemDTO, error) {
	snapshotJSON, err := json.Marshal(item.Snapshot())
	if err != nil {
		return OrderItemDTO{}, err
	}

	var productID *uuid.UUID
	if id := item.ProductID(); id != nil {
		raw := id.Bytes()
		productID = &raw
	}

	return OrderItemDTO{
		ID:              item.ID().Bytes(),
		OrderID:         orderID.Bytes(),
		ProductID:       productID,
		ProductSnapshot: datatypes.JSON(snapshotJSON),
		Quantity:        item.Quantity(),
		UnitPrice:       item.UnitPrice().Amount(),
		MRP:             item.MRP().Amount(),
		DiscountAmount:  item.Discount().Amount(),
		TotalPrice:      item.Total().Amount(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var address order.Address
	if err = json.Unmarshal(dto.DeliveryAddress, &address); err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	moneys := make([]kernel.Money, 7)
	for i, amount := range []decimal.Decimal{
		dto.Subtotal, dto.DeliveryFee, dto.PlatformFee, dto.DiscountAmount, dto.TaxAmount, dto.TipAmount, dto.TotalAmount,
	} {
		if moneys[i], err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		vendorID,
		partnerID,
		status,
		paymentMethod,
		paymentStatus,
		dto.DeliveryOtp,
		address,
		items,
		moneys[0], moneys[1], moneys[2], moneys[3], moneys[4], moneys[5], moneys[6],
		order.Milestones{
			ConfirmedAt: dto.ConfirmedAt,
			PreparingAt: dto.PreparingAt,
			PickedUpAt:  dto.PickedUpAt,
			DeliveredAt: dto.DeliveredAt,
			CancelledAt: dto.CancelledAt,
		},
		dto.CancellationReason,
		dto.CreatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var productID *kernel.UUID
	if dto.ProductID != nil {
		pID, productErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if productErr != nil {
			return nil, productErr
		}
		productID = &pID
	}

	var snapshot order.ProductSnapshot
	if err = json.Unmarshal(dto.ProductSnapshot, &snapshot); err != nil {
		return nil, err
	}

	moneys := make([]kernel.Money, 4)
	for i, amount := range []decimal.Decimal{dto.UnitPrice, dto.MRP, dto.DiscountAmount, dto.TotalPrice} {
		if moneys[i], err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
	}

	return order.RestoreItem(
		id, productID, snapshot, dto.Quantity, moneys[0], moneys[1], moneys[2], moneys[3])
}
