package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryRecordRepository implements the append-only stock ledger using
// GORM. There is deliberately no update or delete path.
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// Create appends a ledger row
func (r *GormInventoryRecordRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID finds a ledger row by its ID
func (r *GormInventoryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByItem returns every ledger row backing a line item, oldest first
func (r *GormInventoryRecordRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByProduct returns a product's movement history
func (r *GormInventoryRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumQuantityByItemAndAction totals the ledger for one item and action.
// COALESCE keeps the sum at zero when no rows exist yet.
func (r *GormInventoryRecordRepository) SumQuantityByItemAndAction(ctx context.Context, itemID uuid.UUID, action inventory.InventoryAction) (int, error) {
	var total int
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryRecord{}).
		Where("item_id = ? AND action = ?", itemID, action).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure GormInventoryRecordRepository implements InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
