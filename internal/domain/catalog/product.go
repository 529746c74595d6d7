package catalog

import (
	"fmt"
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ItemableStatus represents the lifecycle status of a catalog entry
type ItemableStatus string

const (
	ItemableStatusActive   ItemableStatus = "ACTIVE"
	ItemableStatusInactive ItemableStatus = "INACTIVE"
)

// IsValid checks if the status is a valid ItemableStatus
func (s ItemableStatus) IsValid() bool {
	return s == ItemableStatusActive || s == ItemableStatusInactive
}

// Product is a physical stock keeping unit.
//
// Every unit of stock is in exactly one of three places at any time: free
// (Quantity), committed to an open document (Reserved), or moved in/out of
// the warehouse via an inventory record. The mutating methods below are the
// only transitions between those places; callers must hold the product row
// lock for the duration of the enclosing transaction.
type Product struct {
	shared.BaseAggregateRoot
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity  int             `gorm:"not null;default:0"` // On hand, available for new reservation
	Reserved  int             `gorm:"not null;default:0"` // Committed to open documents, not yet moved
	Status    ItemableStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, unitPrice valueobject.Money, initialQuantity int) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if initialQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		Quantity:          initialQuantity,
		Reserved:          0,
		Status:            ItemableStatusActive,
	}, nil
}

// IsActive returns true if the product can be attached to new documents
func (p *Product) IsActive() bool {
	return p.Status == ItemableStatusActive
}

// Reserve moves quantity from on-hand to reserved for an open document
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if p.Quantity < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for product %s: have %d, need %d", p.Code, p.Quantity, quantity))
	}

	p.Quantity -= quantity
	p.Reserved += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ReleaseReservation returns un-exported reserved units back to on-hand.
// Used when an item is removed or its document cancelled before export.
func (p *Product) ReleaseReservation(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if p.Reserved < quantity {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot release %d units of product %s: only %d reserved", quantity, p.Code, p.Reserved))
	}

	p.Reserved -= quantity
	p.Quantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// CommitExport consumes reserved units that have physically left the
// warehouse. On-hand quantity was already decremented at reservation time.
func (p *Product) CommitExport(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Export quantity must be positive")
	}
	if p.Reserved < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Reserved stock of product %s does not cover export: have %d, need %d", p.Code, p.Reserved, quantity))
	}

	p.Reserved -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Import adds incoming units directly to on-hand quantity.
// There is no reservation phase for inbound stock.
func (p *Product) Import(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Import quantity must be positive")
	}

	p.Quantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Adjust applies a manual correction to on-hand quantity.
// Reserved stock is never touched by adjustments.
func (p *Product) Adjust(delta int) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if p.Quantity+delta < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Adjustment would make product %s quantity negative", p.Code))
	}

	p.Quantity += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyVND(p.UnitPrice)
}

// Deactivate removes the product from new-document attachment
func (p *Product) Deactivate() {
	p.Status = ItemableStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
