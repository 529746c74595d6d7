package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var service catalog.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindActiveByID finds a service that is still attachable to documents
func (r *GormServiceRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var service catalog.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, catalog.ItemableStatusActive).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindAll finds all services matching the filter
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Service, error) {
	var services []catalog.Service
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Service{}), filter, "name", "code")

	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// Ensure GormServiceRepository implements ServiceRepository
var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
