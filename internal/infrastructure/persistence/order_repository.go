package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Order, error) {
	var order document.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByCode finds an order by its document code
func (r *GormOrderRepository) FindByCode(ctx context.Context, code string) (*document.Order, error) {
	var order document.Order
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Order, error) {
	var orders []document.Order
	query := applyFilter(orderPartnerFilter(r.db.WithContext(ctx).Model(&document.Order{}), filter), filter, "code")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(orderPartnerFilter(r.db.WithContext(ctx).Model(&document.Order{}), filter), filter, "code")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *document.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *document.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"quantity":     order.Quantity,
			"total_amount": order.TotalAmount,
			"final_amount": order.FinalAmount,
			"discount_id":  order.DiscountID,
			"status":       order.Status,
			"note":         order.Note,
			"version":      order.Version,
			"updated_at":   order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// orderPartnerFilter maps the generic partner filter onto the customer column
func orderPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if value, ok := filter.Filters["partner_id"]; ok {
		query = query.Where("customer_id = ?", value)
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ document.OrderRepository = (*GormOrderRepository)(nil)
