package catalog

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Course is a multi-session training catalog entry. Like services, courses
// carry no physical stock. Seat counting lives with enrollment, outside the
// engine.
type Course struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(255);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SessionCount int             `gorm:"not null;default:1"`
	Status       ItemableStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "courses"
}

// NewCourse creates a new course
func NewCourse(code, name string, unitPrice valueobject.Money, sessionCount int) (*Course, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Course code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Course name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if sessionCount <= 0 {
		return nil, shared.NewDomainError("INVALID_SESSION_COUNT", "Session count must be positive")
	}

	return &Course{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		SessionCount:      sessionCount,
		Status:            ItemableStatusActive,
	}, nil
}

// IsActive returns true if the course can be attached to new documents
func (c *Course) IsActive() bool {
	return c.Status == ItemableStatusActive
}

// GetUnitPriceMoney returns the unit price as Money value object
func (c *Course) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyVND(c.UnitPrice)
}

// Deactivate removes the course from new-document attachment
func (c *Course) Deactivate() {
	c.Status = ItemableStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
