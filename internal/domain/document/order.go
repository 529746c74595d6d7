package document

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a customer-facing sales document. Its quantity and amount columns
// are aggregates over the active line items and are rewritten whenever the
// item set changes.
type Order struct {
	shared.AuditedAggregateRoot
	Code        string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null;default:0"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountID  *uuid.UUID      `gorm:"type:uuid"`
	Status      DocumentStatus  `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	Note        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an empty confirmed order shell for a customer.
func NewOrder(code string, customerID uuid.UUID, createdBy *uuid.UUID) (*Order, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order code cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}

	return &Order{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Code:                 code,
		CustomerID:           customerID,
		Quantity:             0,
		TotalAmount:          decimal.Zero,
		FinalAmount:          decimal.Zero,
		Status:               DocumentStatusConfirmed,
	}, nil
}

// SourceRef returns the discriminated reference to this order
func (o *Order) SourceRef() SourceRef {
	return SourceRef{Type: SourceTypeOrder, ID: o.ID}
}

// ApplyAggregates rewrites the denormalized quantity and amount columns from
// the current set of active items.
func (o *Order) ApplyAggregates(quantity int, totalAmount, finalAmount valueobject.Money) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled order")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Order quantity cannot be negative")
	}
	if totalAmount.IsNegative() || finalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order amounts cannot be negative")
	}

	o.Quantity = quantity
	o.TotalAmount = totalAmount.Amount()
	o.FinalAmount = finalAmount.Amount()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ApplyDiscount attaches a document-level discount reference
func (o *Order) ApplyDiscount(discountID uuid.UUID) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled order")
	}

	o.DiscountID = &discountID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RefreshStatus re-derives the document status from the active items and the
// paired money transaction. Cancelled orders never move again.
func (o *Order) RefreshStatus(activeItems []Item, txn *Transaction) {
	if o.Status.IsTerminal() {
		return
	}

	next := DeriveDocumentStatus(activeItems, txn)
	if next == o.Status {
		return
	}

	o.Status = next
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Cancel moves the order to its terminal state.
func (o *Order) Cancel() error {
	if o.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}
	if o.Status == DocumentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed order")
	}

	o.Status = DocumentStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// GetTotalAmountMoney returns the pre-discount total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.TotalAmount)
}

// GetFinalAmountMoney returns the payable total as Money
func (o *Order) GetFinalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.FinalAmount)
}
