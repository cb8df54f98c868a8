package orderrepo

import (
	"context"
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// Repository implements order persistence using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a repository bound to the provided database
// connection and aggregate tracker.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by its unique identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// UpdateInStatus persists the aggregate's current state only if the stored
// row is still in expectedStatus. A concurrent transition that has already
// moved the order away surfaces as ports.ErrConcurrentModification.
func (r *GormOrderRepository) UpdateInStatus(
	ctx context.Context, aggregate *order.Order, expectedStatus order.Status,
) error {
	if err := errors.Join(aggregate.Validate(), expectedStatus.Validate()); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	columns := map[string]any{
		"delivery_partner_id": dto.DeliveryPartnerID,
		"status":              dto.Status,
		"payment_status":      dto.PaymentStatus,
		"confirmed_at":        dto.ConfirmedAt,
		"preparing_at":        dto.PreparingAt,
		"picked_up_at":        dto.PickedUpAt,
		"delivered_at":        dto.DeliveredAt,
		"cancelled_at":        dto.CancelledAt,
		"cancellation_reason": dto.CancellationReason,
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
