package document

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is derived from paid amount vs total amount, never set
// directly.
type TransactionStatus string

const (
	TransactionStatusUnpaid   TransactionStatus = "UNPAID"
	TransactionStatusPartial  TransactionStatus = "PARTIAL"
	TransactionStatusPaid     TransactionStatus = "PAID"
	TransactionStatusOverpaid TransactionStatus = "OVERPAID"
)

// IsValid returns true if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusUnpaid, TransactionStatusPartial, TransactionStatusPaid, TransactionStatusOverpaid:
		return true
	}
	return false
}

// TransactionDirection distinguishes money collected from money owed out.
type TransactionDirection string

const (
	// TransactionDirectionIn collects money from a partner (orders,
	// consignment-out commissions).
	TransactionDirectionIn TransactionDirection = "IN"
	// TransactionDirectionOut pays money to a partner (purchases, refunds
	// created by cancellation).
	TransactionDirectionOut TransactionDirection = "OUT"
)

// IsValid returns true if the direction is valid
func (d TransactionDirection) IsValid() bool {
	return d == TransactionDirectionIn || d == TransactionDirectionOut
}

// Opposite returns the reversed direction
func (d TransactionDirection) Opposite() TransactionDirection {
	if d == TransactionDirectionIn {
		return TransactionDirectionOut
	}
	return TransactionDirectionIn
}

// Transaction is the money ledger entry paired 1:1 with a source document.
// Cancellation never rewrites a Transaction; it appends a compensating one.
type Transaction struct {
	shared.BaseAggregateRoot
	SourceID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_transactions_source,priority:2"`
	SourceType  SourceType           `gorm:"type:varchar(20);not null;index:idx_transactions_source,priority:1"`
	Direction   TransactionDirection `gorm:"type:varchar(10);not null"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	PaidAmount  decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Status      TransactionStatus    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a money ledger entry for a source document.
func NewTransaction(source SourceRef, direction TransactionDirection, total valueobject.Money) (*Transaction, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid transaction direction")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction total cannot be negative")
	}

	t := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceID:          source.ID,
		SourceType:        source.Type,
		Direction:         direction,
		TotalAmount:       total.Amount(),
		PaidAmount:        decimal.Zero,
	}
	t.recomputeStatus()

	return t, nil
}

// NewCompensation creates the refund-side ledger entry for a cancelled
// document: opposite direction, principal equal to whatever was actually
// collected, nothing paid yet. The original entry is left untouched.
func NewCompensation(original *Transaction) *Transaction {
	t := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceID:          original.SourceID,
		SourceType:        original.SourceType,
		Direction:         original.Direction.Opposite(),
		TotalAmount:       original.PaidAmount,
		PaidAmount:        decimal.Zero,
	}
	t.recomputeStatus()

	return t
}

// SourceRef returns the discriminated reference to the paired document
func (t *Transaction) SourceRef() SourceRef {
	return SourceRef{Type: t.SourceType, ID: t.SourceID}
}

// ApplyPayment records a collected amount and re-derives the status.
func (t *Transaction) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	t.PaidAmount = t.PaidAmount.Add(amount.Amount())
	t.recomputeStatus()
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// ResetTotal replaces the principal after the paired document's aggregates
// changed (item added or removed) and re-derives the status against the
// amount already paid.
func (t *Transaction) ResetTotal(total valueobject.Money) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Transaction total cannot be negative")
	}

	t.TotalAmount = total.Amount()
	t.recomputeStatus()
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// IsPaid returns true when the principal is fully covered
func (t *Transaction) IsPaid() bool {
	return t.Status == TransactionStatusPaid || t.Status == TransactionStatusOverpaid
}

// GetTotalAmountMoney returns the principal as Money
func (t *Transaction) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(t.TotalAmount)
}

// GetPaidAmountMoney returns the collected amount as Money
func (t *Transaction) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(t.PaidAmount)
}

func (t *Transaction) recomputeStatus() {
	switch {
	case t.PaidAmount.GreaterThan(t.TotalAmount):
		t.Status = TransactionStatusOverpaid
	case t.PaidAmount.Equal(t.TotalAmount):
		t.Status = TransactionStatusPaid
	case t.PaidAmount.IsPositive():
		t.Status = TransactionStatusPartial
	default:
		t.Status = TransactionStatusUnpaid
	}
}
