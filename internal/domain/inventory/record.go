package inventory

import (
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryAction tags a ledger row with the kind of stock movement it records
type InventoryAction string

const (
	InventoryActionImport      InventoryAction = "IMPORT"       // Goods received into stock
	InventoryActionExport      InventoryAction = "EXPORT"       // Goods shipped out of stock
	InventoryActionAdjustPlus  InventoryAction = "ADJUST_PLUS"  // Manual correction upward
	InventoryActionAdjustMinus InventoryAction = "ADJUST_MINUS" // Manual correction downward
)

// IsValid returns true if the action is a valid InventoryAction
func (a InventoryAction) IsValid() bool {
	switch a {
	case InventoryActionImport, InventoryActionExport, InventoryActionAdjustPlus, InventoryActionAdjustMinus:
		return true
	}
	return false
}

// ParseInventoryAction parses a string into an InventoryAction
func ParseInventoryAction(s string) (InventoryAction, error) {
	a := InventoryAction(s)
	if !a.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unrecognized inventory action")
	}
	return a, nil
}

// InventoryRecord is one append-only row of the stock movement ledger.
// Records are immutable once written; corrections append new rows instead of
// editing old ones, so the ledger stays a faithful audit trail.
type InventoryRecord struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_product"`
	ItemID    *uuid.UUID      `gorm:"type:uuid;index:idx_inventory_item"`
	Action    InventoryAction `gorm:"type:varchar(20);not null;index:idx_inventory_item"`
	Quantity  int             `gorm:"not null"`
	Note      string          `gorm:"type:text"`
	CreatorID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewItemRecord creates a ledger row backing a line item movement.
func NewItemRecord(productID, itemID uuid.UUID, action InventoryAction, quantity int, creatorID *uuid.UUID) (*InventoryRecord, error) {
	if productID == uuid.Nil || itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and item IDs cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unrecognized inventory action")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Record quantity must be positive")
	}

	return &InventoryRecord{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ItemID:     &itemID,
		Action:     action,
		Quantity:   quantity,
		CreatorID:  creatorID,
	}, nil
}

// NewAdjustmentRecord creates a ledger row for a manual stock correction that
// is not tied to any document.
func NewAdjustmentRecord(productID uuid.UUID, action InventoryAction, quantity int, note string, creatorID *uuid.UUID) (*InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if action != InventoryActionAdjustPlus && action != InventoryActionAdjustMinus {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment records require an adjust action")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Record quantity must be positive")
	}

	return &InventoryRecord{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Action:     action,
		Quantity:   quantity,
		Note:       note,
		CreatorID:  creatorID,
	}, nil
}
