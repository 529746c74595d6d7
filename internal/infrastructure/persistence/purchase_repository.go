package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Purchase, error) {
	var purchase document.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByCode finds a purchase by its document code
func (r *GormPurchaseRepository) FindByCode(ctx context.Context, code string) (*document.Purchase, error) {
	var purchase document.Purchase
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Purchase, error) {
	var purchases []document.Purchase
	query := applyFilter(purchasePartnerFilter(r.db.WithContext(ctx).Model(&document.Purchase{}), filter), filter, "code")

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(purchasePartnerFilter(r.db.WithContext(ctx).Model(&document.Purchase{}), filter), filter, "code")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *document.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *document.Purchase) error {
	result := r.db.WithContext(ctx).
		Model(purchase).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version-1).
		Updates(map[string]interface{}{
			"quantity":        purchase.Quantity,
			"total_amount":    purchase.TotalAmount,
			"discount_amount": purchase.DiscountAmount,
			"final_amount":    purchase.FinalAmount,
			"status":          purchase.Status,
			"note":            purchase.Note,
			"version":         purchase.Version,
			"updated_at":      purchase.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// purchasePartnerFilter maps the generic partner filter onto the supplier column
func purchasePartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if value, ok := filter.Filters["partner_id"]; ok {
		query = query.Where("supplier_id = ?", value)
	}
	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ document.PurchaseRepository = (*GormPurchaseRepository)(nil)
