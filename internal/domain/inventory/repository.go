package inventory

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryRecordRepository handles the append-only stock ledger. There is no
// update or delete on purpose.
type InventoryRecordRepository interface {
	Create(ctx context.Context, record *InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)
	// FindByItem returns every ledger row backing a line item
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]InventoryRecord, error)
	// FindByProduct returns the product's movement history, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]InventoryRecord, error)
	// SumQuantityByItemAndAction totals the ledger for one item and action.
	// This sum is the single source of truth for how much of an item has
	// already been handled.
	SumQuantityByItemAndAction(ctx context.Context, itemID uuid.UUID, action InventoryAction) (int, error)
}
