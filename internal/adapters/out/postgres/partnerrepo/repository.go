package partnerrepo

import (
	"context"
	"errors"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.PartnerRepository = (*GormPartnerRepository)(nil)

// Repository implements delivery partner persistence using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a repository bound to the provided database
// connection and aggregate tracker.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new delivery partner aggregate.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.DeliveryPartner) error {
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

// Get retrieves a partner aggregate by its unique identifier.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a partner aggregate with its row locked until the
// surrounding transaction ends. Allocations and delivery completions load
// the partner through this method so concurrent balance changes serialize.
func (r *GormPartnerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	return r.get(ctx, id, true)
}

func (r *GormPartnerRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto PartnerDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
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

// Update persists the current state of an existing partner aggregate.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := map[string]any{
		"user_id":          dto.UserID,
		"status":           dto.Status,
		"credit_balance":   dto.CreditBalance,
		"is_verified":      dto.IsVerified,
		"total_deliveries": dto.TotalDeliveries,
		"rating":           dto.Rating,
	}

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery partner", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddTransaction appends a ledger entry. Entries are immutable; there is no
// update path.
func (r *GormPartnerRepository) AddTransaction(ctx context.Context, tx *partner.CreditTransaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(tx)
	return r.db.WithContext(ctx).Create(&dto).Error
}
