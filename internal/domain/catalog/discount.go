package catalog

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a discount value is interpreted
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "FIXED"      // Value is an absolute amount
	DiscountTypePercentage DiscountType = "PERCENTAGE" // Value is a percentage of the base
)

// IsValid checks if the type is a valid DiscountType
func (t DiscountType) IsValid() bool {
	return t == DiscountTypeFixed || t == DiscountTypePercentage
}

// DiscountStatus represents the lifecycle status of a discount
type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "ACTIVE"
	DiscountStatusInactive DiscountStatus = "INACTIVE"
	DiscountStatusExpired  DiscountStatus = "EXPIRED"
)

// IsValid checks if the status is a valid DiscountStatus
func (s DiscountStatus) IsValid() bool {
	switch s {
	case DiscountStatusActive, DiscountStatusInactive, DiscountStatusExpired:
		return true
	}
	return false
}

// Discount is a pricing rule applied to order line items and order totals.
type Discount struct {
	shared.BaseAggregateRoot
	Name              string           `gorm:"type:varchar(255);not null"`
	Type              DiscountType     `gorm:"type:varchar(20);not null"`
	Value             decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	MinTotalValue     *decimal.Decimal `gorm:"type:decimal(18,2)"` // Below this base amount the discount does not apply
	MaxDiscountAmount *decimal.Decimal `gorm:"type:decimal(18,2)"` // Cap on the computed discount
	Status            DiscountStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a new discount
func NewDiscount(name string, dtype DiscountType, value decimal.Decimal) (*Discount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if !dtype.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Invalid discount type")
	}
	if value.IsNegative() || value.IsZero() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value must be positive")
	}
	if dtype == DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percentage discount cannot exceed 100")
	}

	return &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              dtype,
		Value:             value,
		Status:            DiscountStatusActive,
	}, nil
}

// WithMinTotalValue sets the minimum base amount for the discount to apply
func (d *Discount) WithMinTotalValue(min decimal.Decimal) *Discount {
	d.MinTotalValue = &min
	return d
}

// WithMaxDiscountAmount sets the cap on the computed discount
func (d *Discount) WithMaxDiscountAmount(max decimal.Decimal) *Discount {
	d.MaxDiscountAmount = &max
	return d
}

// IsActive returns true if the discount can be applied
func (d *Discount) IsActive() bool {
	return d.Status == DiscountStatusActive
}

// AppliesTo reports whether the discount applies to the given base amount.
// A discount with a minimum threshold leaves smaller bases untouched.
func (d *Discount) AppliesTo(base valueobject.Money) bool {
	if d.MinTotalValue == nil {
		return true
	}
	return base.Amount().GreaterThanOrEqual(*d.MinTotalValue)
}

// ComputeAmount computes the discount amount for the given base, before the
// quantity multiplier. The result is clamped to MaxDiscountAmount when set,
// and never exceeds the base. Fixed and percentage discounts share the cap.
func (d *Discount) ComputeAmount(base valueobject.Money) valueobject.Money {
	if !d.AppliesTo(base) {
		return valueobject.Zero(base.Currency())
	}

	var raw decimal.Decimal
	switch d.Type {
	case DiscountTypePercentage:
		raw = base.CalculatePercentage(d.Value).Amount()
	default:
		raw = d.Value
	}

	if d.MaxDiscountAmount != nil && raw.GreaterThan(*d.MaxDiscountAmount) {
		raw = *d.MaxDiscountAmount
	}
	if raw.GreaterThan(base.Amount()) {
		raw = base.Amount()
	}
	if raw.IsNegative() {
		raw = decimal.Zero
	}

	m, _ := valueobject.NewMoney(raw, base.Currency())
	return m
}

// Deactivate disables the discount
func (d *Discount) Deactivate() {
	d.Status = DiscountStatusInactive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
