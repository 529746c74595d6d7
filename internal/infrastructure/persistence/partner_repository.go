package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindActiveByType finds an active partner of the expected relationship
func (r *GormPartnerRepository) FindActiveByType(ctx context.Context, id uuid.UUID, partnerType partner.PartnerType) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).
		Where("id = ? AND type = ? AND status = ?", id, partnerType, partner.PartnerStatusActive).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode finds a partner by its code
func (r *GormPartnerRepository) FindByCode(ctx context.Context, code string) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all partners matching the filter
func (r *GormPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Partner, error) {
	var partners []partner.Partner
	query := applyFilter(r.db.WithContext(ctx).Model(&partner.Partner{}), filter, "name", "code", "phone")

	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// Count counts partners matching the filter
func (r *GormPartnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Partner{}), filter, "name", "code", "phone")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)
