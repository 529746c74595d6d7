package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConsignmentRepository implements ConsignmentRepository using GORM
type GormConsignmentRepository struct {
	db *gorm.DB
}

// NewGormConsignmentRepository creates a new GormConsignmentRepository
func NewGormConsignmentRepository(db *gorm.DB) *GormConsignmentRepository {
	return &GormConsignmentRepository{db: db}
}

// FindByID finds a consignment by its ID
func (r *GormConsignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Consignment, error) {
	var consignment document.Consignment
	if err := r.db.WithContext(ctx).First(&consignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &consignment, nil
}

// FindByCode finds a consignment by its document code
func (r *GormConsignmentRepository) FindByCode(ctx context.Context, code string) (*document.Consignment, error) {
	var consignment document.Consignment
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&consignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &consignment, nil
}

// FindAll finds all consignments matching the filter
func (r *GormConsignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Consignment, error) {
	var consignments []document.Consignment
	query := applyFilter(consignmentPartnerFilter(r.db.WithContext(ctx).Model(&document.Consignment{}), filter), filter, "code")

	if err := query.Find(&consignments).Error; err != nil {
		return nil, err
	}
	return consignments, nil
}

// Count counts consignments matching the filter
func (r *GormConsignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(consignmentPartnerFilter(r.db.WithContext(ctx).Model(&document.Consignment{}), filter), filter, "code")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a consignment
func (r *GormConsignmentRepository) Save(ctx context.Context, consignment *document.Consignment) error {
	return r.db.WithContext(ctx).Save(consignment).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormConsignmentRepository) SaveWithLock(ctx context.Context, consignment *document.Consignment) error {
	result := r.db.WithContext(ctx).
		Model(consignment).
		Where("id = ? AND version = ?", consignment.ID, consignment.Version-1).
		Updates(map[string]interface{}{
			"quantity":     consignment.Quantity,
			"total_amount": consignment.TotalAmount,
			"final_amount": consignment.FinalAmount,
			"status":       consignment.Status,
			"note":         consignment.Note,
			"version":      consignment.Version,
			"updated_at":   consignment.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// consignmentPartnerFilter maps the generic partner filter onto the partner column
func consignmentPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if value, ok := filter.Filters["partner_id"]; ok {
		query = query.Where("partner_id = ?", value)
	}
	return query
}

// Ensure GormConsignmentRepository implements ConsignmentRepository
var _ document.ConsignmentRepository = (*GormConsignmentRepository)(nil)
