package document

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents how far an item's stock movement has progressed
type ItemStatus string

const (
	ItemStatusNone        ItemStatus = "NONE"        // No movement recorded yet
	ItemStatusPartial     ItemStatus = "PARTIAL"     // Ledger covers part of the quantity
	ItemStatusImported    ItemStatus = "IMPORTED"    // Fully received (product only)
	ItemStatusExported    ItemStatus = "EXPORTED"    // Fully shipped (product only)
	ItemStatusTransferred ItemStatus = "TRANSFERRED" // Sessions consumed (services and courses)
)

// IsValid returns true if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusNone, ItemStatusPartial, ItemStatusImported, ItemStatusExported, ItemStatusTransferred:
		return true
	}
	return false
}

// IsFinal returns true if no further stock movement is expected
func (s ItemStatus) IsFinal() bool {
	return s == ItemStatusImported || s == ItemStatusExported || s == ItemStatusTransferred
}

// AllowedFor reports whether the status is meaningful for the given itemable
// family. Imported/Exported describe physical stock, Transferred describes
// session consumption on services and courses.
func (s ItemStatus) AllowedFor(itemableType ItemableType) bool {
	switch s {
	case ItemStatusImported, ItemStatusExported:
		return itemableType == ItemableTypeProduct
	case ItemStatusTransferred:
		return itemableType == ItemableTypeService || itemableType == ItemableTypeCourse
	}
	return true
}

// AdjustmentType records why an item row last changed
type AdjustmentType string

const (
	AdjustmentTypeInit      AdjustmentType = "INIT"      // Created with the document
	AdjustmentTypeAdd       AdjustmentType = "ADD"       // Quantity merged into an existing row
	AdjustmentTypeRemove    AdjustmentType = "REMOVE"    // Soft-disabled by removal
	AdjustmentTypeReplace   AdjustmentType = "REPLACE"   // Quantity/amount rewritten
	AdjustmentTypeCancelled AdjustmentType = "CANCELLED" // Soft-disabled by document cancel
)

// IsValid returns true if the adjustment type is valid
func (a AdjustmentType) IsValid() bool {
	switch a {
	case AdjustmentTypeInit, AdjustmentTypeAdd, AdjustmentTypeRemove, AdjustmentTypeReplace, AdjustmentTypeCancelled:
		return true
	}
	return false
}

// ItemSnapshot freezes the itemable's pricing data at attachment time so
// later catalog edits never retroactively change historical documents.
// Stored as JSONB on the item row; immutable once written.
type ItemSnapshot struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DurationMinutes   int             `json:"duration_minutes,omitempty"`
	SessionCount      int             `json:"session_count,omitempty"`
	BonusSessionCount int             `json:"bonus_session_count,omitempty"`
}

// Value implements driver.Valuer for GORM to store as JSONB
func (s ItemSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (s *ItemSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = ItemSnapshot{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ItemSnapshot", value)
	}

	return json.Unmarshal(bytes, s)
}

// Item is a line entry attaching one itemable unit to one source document.
type Item struct {
	shared.BaseAggregateRoot
	SourceID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_items_source,priority:2"`
	SourceType   SourceType      `gorm:"type:varchar(20);not null;index:idx_items_source,priority:1"`
	ItemableID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_items_itemable,priority:2"`
	ItemableType ItemableType    `gorm:"type:varchar(20);not null;index:idx_items_itemable,priority:1"`
	Quantity     int             `gorm:"not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	FinalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountID   *uuid.UUID      `gorm:"type:uuid"`
	Status       ItemStatus      `gorm:"type:varchar(20);not null;default:'NONE'"`
	Adjustment   AdjustmentType  `gorm:"type:varchar(20);not null;default:'INIT'"`
	IsActive     bool            `gorm:"not null;default:true"`
	Snapshot     ItemSnapshot    `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new line item. The snapshot is written exactly once here.
func NewItem(source SourceRef, itemable ItemableRef, quantity int, totalAmount, finalAmount valueobject.Money, discountID *uuid.UUID, snapshot ItemSnapshot) (*Item, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if totalAmount.IsNegative() || finalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amounts cannot be negative")
	}
	if gt, err := finalAmount.GreaterThan(totalAmount); err != nil || gt {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Final amount cannot exceed total amount")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceID:          source.ID,
		SourceType:        source.Type,
		ItemableID:        itemable.ID,
		ItemableType:      itemable.Type,
		Quantity:          quantity,
		TotalAmount:       totalAmount.Amount(),
		FinalAmount:       finalAmount.Amount(),
		DiscountID:        discountID,
		Status:            ItemStatusNone,
		Adjustment:        AdjustmentTypeInit,
		IsActive:          true,
		Snapshot:          snapshot,
	}, nil
}

// SourceRef returns the discriminated reference to the parent document
func (i *Item) SourceRef() SourceRef {
	return SourceRef{Type: i.SourceType, ID: i.SourceID}
}

// ItemableRef returns the discriminated reference to the catalog entity
func (i *Item) ItemableRef() ItemableRef {
	return ItemableRef{Type: i.ItemableType, ID: i.ItemableID}
}

// Merge absorbs an additional quantity of the same itemable into this row.
// Amounts are recomputed by the caller from the merged quantity; the
// snapshot written at creation stays untouched.
func (i *Item) Merge(additionalQuantity int, totalAmount, finalAmount valueobject.Money) error {
	if !i.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot merge into an inactive item")
	}
	if i.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot merge into a fully handled item")
	}
	if additionalQuantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Merge quantity must be positive")
	}
	if gt, err := finalAmount.GreaterThan(totalAmount); err != nil || gt {
		return shared.NewDomainError("INVALID_AMOUNT", "Final amount cannot exceed total amount")
	}

	i.Quantity += additionalQuantity
	i.TotalAmount = totalAmount.Amount()
	i.FinalAmount = finalAmount.Amount()
	i.Adjustment = AdjustmentTypeAdd
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// ChangeStatus sets the item status, enforcing the itemable family rules.
func (i *Item) ChangeStatus(status ItemStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unrecognized item status %q", status))
	}
	if !status.AllowedFor(i.ItemableType) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Status %s is not allowed for %s items", status, i.ItemableType))
	}

	i.Status = status
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Disable soft-deletes the item. Items are never hard-deleted once created;
// the adjustment type records whether this was a removal or a cancellation.
func (i *Item) Disable(adjustment AdjustmentType) error {
	if adjustment != AdjustmentTypeRemove && adjustment != AdjustmentTypeCancelled {
		return shared.NewDomainError("INVALID_INPUT", "Disable requires a remove or cancelled adjustment")
	}
	if !i.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Item is already inactive")
	}

	i.IsActive = false
	i.Adjustment = adjustment
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// GetTotalAmountMoney returns the total amount as Money
func (i *Item) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(i.TotalAmount)
}

// GetFinalAmountMoney returns the final amount as Money
func (i *Item) GetFinalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(i.FinalAmount)
}

// DeriveStatus computes the item status implied by the handled quantity.
// It is a pure function of the ledger sum vs the item quantity; the fully
// handled status depends on the movement direction. A handled quantity above
// the item quantity is an invariant violation and fails hard.
func DeriveStatus(itemableType ItemableType, fullStatus ItemStatus, handled, quantity int) (ItemStatus, error) {
	if handled < 0 || quantity <= 0 {
		return "", shared.ErrInvalidInput
	}
	if handled > quantity {
		return "", shared.ErrLedgerOvershoot
	}
	if !fullStatus.AllowedFor(itemableType) {
		return "", shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Status %s is not allowed for %s items", fullStatus, itemableType))
	}

	switch {
	case handled == 0:
		return ItemStatusNone, nil
	case handled < quantity:
		return ItemStatusPartial, nil
	default:
		return fullStatus, nil
	}
}
