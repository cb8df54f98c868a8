package billrepo

import (
	"context"
	"errors"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.BillRepository = (*GormBillRepository)(nil)

// Repository implements delivery bill persistence using GORM.
type GormBillRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBillRepository creates a repository bound to the provided database
// connection and aggregate tracker.
func NewGormBillRepository(db *gorm.DB, tracker aggregateTracker) *GormBillRepository {
	return &GormBillRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new delivery bill.
func (r *GormBillRepository) Add(ctx context.Context, aggregate *bill.DeliveryBill) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bill by its unique identifier.
func (r *GormBillRepository) Get(ctx context.Context, id kernel.UUID) (*bill.DeliveryBill, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BillDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery bill", id.String())
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

// UpdateInStatus persists the bill's current state only if the stored row is
// still in expectedStatus. A review that has already landed surfaces as
// ports.ErrConcurrentModification.
func (r *GormBillRepository) UpdateInStatus(
	ctx context.Context, aggregate *bill.DeliveryBill, expectedStatus bill.Status,
) error {
	if err := errors.Join(aggregate.Validate(), expectedStatus.Validate()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := map[string]any{
		"status":      dto.Status,
		"admin_notes": dto.AdminNotes,
		"reviewed_by": dto.ReviewedBy,
		"reviewed_at": dto.ReviewedAt,
	}

	result := r.db.WithContext(ctx).
		Model(&BillDTO{}).
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
