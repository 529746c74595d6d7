package document

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a supplier-facing procurement document. Unlike orders it
// carries a flat negotiated discount amount instead of a discount reference.
type Purchase struct {
	shared.AuditedAggregateRoot
	Code           string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       int             `gorm:"not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	Note           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates an empty confirmed purchase shell for a supplier.
func NewPurchase(code string, supplierID uuid.UUID, createdBy *uuid.UUID) (*Purchase, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase code cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID cannot be empty")
	}

	return &Purchase{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Code:                 code,
		SupplierID:           supplierID,
		Quantity:             0,
		TotalAmount:          decimal.Zero,
		DiscountAmount:       decimal.Zero,
		FinalAmount:          decimal.Zero,
		Status:               DocumentStatusConfirmed,
	}, nil
}

// SourceRef returns the discriminated reference to this purchase
func (p *Purchase) SourceRef() SourceRef {
	return SourceRef{Type: SourceTypePurchase, ID: p.ID}
}

// ApplyAggregates rewrites the denormalized columns from the active items and
// re-applies the flat discount. The final amount never drops below zero.
func (p *Purchase) ApplyAggregates(quantity int, totalAmount valueobject.Money) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled purchase")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Purchase quantity cannot be negative")
	}
	if totalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Purchase total cannot be negative")
	}

	p.Quantity = quantity
	p.TotalAmount = totalAmount.Amount()
	p.FinalAmount = p.TotalAmount.Sub(p.DiscountAmount)
	if p.FinalAmount.IsNegative() {
		p.FinalAmount = decimal.Zero
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDiscountAmount records the negotiated flat reduction and recomputes the
// payable total.
func (p *Purchase) SetDiscountAmount(amount valueobject.Money) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled purchase")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount amount cannot be negative")
	}

	p.DiscountAmount = amount.Amount()
	p.FinalAmount = p.TotalAmount.Sub(p.DiscountAmount)
	if p.FinalAmount.IsNegative() {
		p.FinalAmount = decimal.Zero
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RefreshStatus re-derives the document status from the active items and the
// paired money transaction.
func (p *Purchase) RefreshStatus(activeItems []Item, txn *Transaction) {
	if p.Status.IsTerminal() {
		return
	}

	next := DeriveDocumentStatus(activeItems, txn)
	if next == p.Status {
		return
	}

	p.Status = next
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Cancel moves the purchase to its terminal state.
func (p *Purchase) Cancel() error {
	if p.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Purchase is already cancelled")
	}
	if p.Status == DocumentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed purchase")
	}

	p.Status = DocumentStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// GetTotalAmountMoney returns the pre-discount total as Money
func (p *Purchase) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(p.TotalAmount)
}

// GetFinalAmountMoney returns the payable total as Money
func (p *Purchase) GetFinalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(p.FinalAmount)
}
