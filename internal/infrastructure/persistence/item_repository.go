package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Item, error) {
	var item document.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindActiveByID finds an item that has not been soft-deleted
func (r *GormItemRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*document.Item, error) {
	var item document.Item
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindActiveBySource returns every active item on a document, oldest first
func (r *GormItemRepository) FindActiveBySource(ctx context.Context, source document.SourceRef) ([]document.Item, error) {
	var items []document.Item
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ? AND is_active = ?", source.Type, source.ID, true).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActiveBySourceAndItemable locates the merge target for an add
func (r *GormItemRepository) FindActiveBySourceAndItemable(ctx context.Context, source document.SourceRef, itemable document.ItemableRef) (*document.Item, error) {
	var item document.Item
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ? AND itemable_type = ? AND itemable_id = ? AND is_active = ?",
			source.Type, source.ID, itemable.Type, itemable.ID, true).
		Order("created_at ASC").
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *document.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormItemRepository) SaveWithLock(ctx context.Context, item *document.Item) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"quantity":     item.Quantity,
			"total_amount": item.TotalAmount,
			"final_amount": item.FinalAmount,
			"status":       item.Status,
			"adjustment":   item.Adjustment,
			"is_active":    item.IsActive,
			"version":      item.Version,
			"updated_at":   item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// Ensure GormItemRepository implements ItemRepository
var _ document.ItemRepository = (*GormItemRepository)(nil)
