package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Transaction, error) {
	var txn document.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindBySource returns every ledger entry for a document, oldest first, so
// the original entry always precedes its compensations
func (r *GormTransactionRepository) FindBySource(ctx context.Context, source document.SourceRef) ([]document.Transaction, error) {
	var txns []document.Transaction
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", source.Type, source.ID).
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindPrimaryBySource returns the original (non-compensating) ledger entry
func (r *GormTransactionRepository) FindPrimaryBySource(ctx context.Context, source document.SourceRef) (*document.Transaction, error) {
	var txn document.Transaction
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", source.Type, source.ID).
		Order("created_at ASC").
		First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// Save creates or updates a ledger entry
func (r *GormTransactionRepository) Save(ctx context.Context, txn *document.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTransactionRepository) SaveWithLock(ctx context.Context, txn *document.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(txn).
		Where("id = ? AND version = ?", txn.ID, txn.Version-1).
		Updates(map[string]interface{}{
			"total_amount": txn.TotalAmount,
			"paid_amount":  txn.PaidAmount,
			"status":       txn.Status,
			"version":      txn.Version,
			"updated_at":   txn.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ document.TransactionRepository = (*GormTransactionRepository)(nil)
