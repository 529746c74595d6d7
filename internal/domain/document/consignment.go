package document

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsignmentDirection distinguishes goods taken in on behalf of a partner
// from goods placed out with one.
type ConsignmentDirection string

const (
	ConsignmentDirectionIn  ConsignmentDirection = "IN"  // Partner's goods held by us
	ConsignmentDirectionOut ConsignmentDirection = "OUT" // Our goods held by the partner
)

// IsValid returns true if the direction is valid
func (d ConsignmentDirection) IsValid() bool {
	return d == ConsignmentDirectionIn || d == ConsignmentDirectionOut
}

// ParseConsignmentDirection parses a string into a ConsignmentDirection
func ParseConsignmentDirection(s string) (ConsignmentDirection, error) {
	d := ConsignmentDirection(s)
	if !d.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Consignment direction must be IN or OUT")
	}
	return d, nil
}

// Consignment is a partner stock-holding document. Its direction decides how
// item handling moves inventory: IN consignments receive stock, OUT
// consignments ship it.
type Consignment struct {
	shared.AuditedAggregateRoot
	Code           string               `gorm:"type:varchar(50);uniqueIndex;not null"`
	PartnerID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Direction      ConsignmentDirection `gorm:"type:varchar(10);not null"`
	CommissionRate decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	Quantity       int                  `gorm:"not null;default:0"`
	TotalAmount    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Status         DocumentStatus       `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	Note           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Consignment) TableName() string {
	return "consignments"
}

// NewConsignment creates an empty confirmed consignment shell. The commission
// rate is a percentage of the total kept by whichever side sells the goods.
func NewConsignment(code string, partnerID uuid.UUID, direction ConsignmentDirection, commissionRate decimal.Decimal, createdBy *uuid.UUID) (*Consignment, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Consignment code cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Consignment direction must be IN or OUT")
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Commission rate must be between 0 and 100")
	}

	return &Consignment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Code:                 code,
		PartnerID:            partnerID,
		Direction:            direction,
		CommissionRate:       commissionRate,
		Quantity:             0,
		TotalAmount:          decimal.Zero,
		FinalAmount:          decimal.Zero,
		Status:               DocumentStatusConfirmed,
	}, nil
}

// SourceRef returns the discriminated reference to this consignment
func (c *Consignment) SourceRef() SourceRef {
	return SourceRef{Type: SourceTypeConsignment, ID: c.ID}
}

// TransactionDirection returns the money direction implied by the stock
// direction: shipping goods out collects money, taking goods in owes it.
func (c *Consignment) TransactionDirection() TransactionDirection {
	if c.Direction == ConsignmentDirectionOut {
		return TransactionDirectionIn
	}
	return TransactionDirectionOut
}

// ApplyAggregates rewrites the denormalized columns from the active items.
// The final amount is the total less the partner commission.
func (c *Consignment) ApplyAggregates(quantity int, totalAmount valueobject.Money) error {
	if c.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled consignment")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Consignment quantity cannot be negative")
	}
	if totalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Consignment total cannot be negative")
	}

	c.Quantity = quantity
	c.TotalAmount = totalAmount.Amount()
	commission := c.TotalAmount.Mul(c.CommissionRate).Div(decimal.NewFromInt(100))
	c.FinalAmount = c.TotalAmount.Sub(commission)
	if c.FinalAmount.IsNegative() {
		c.FinalAmount = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RefreshStatus re-derives the document status from the active items and the
// paired money transaction.
func (c *Consignment) RefreshStatus(activeItems []Item, txn *Transaction) {
	if c.Status.IsTerminal() {
		return
	}

	next := DeriveDocumentStatus(activeItems, txn)
	if next == c.Status {
		return
	}

	c.Status = next
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Cancel moves the consignment to its terminal state.
func (c *Consignment) Cancel() error {
	if c.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Consignment is already cancelled")
	}
	if c.Status == DocumentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed consignment")
	}

	c.Status = DocumentStatusCancelled
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// GetTotalAmountMoney returns the pre-commission total as Money
func (c *Consignment) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(c.TotalAmount)
}

// GetFinalAmountMoney returns the settleable total as Money
func (c *Consignment) GetFinalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(c.FinalAmount)
}
