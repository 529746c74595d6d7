package catalog

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Service is a bookable catalog entry (e.g. a treatment). Services carry no
// physical stock; their line items never pass through the inventory ledger.
type Service struct {
	shared.BaseAggregateRoot
	Code              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(255);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DurationMinutes   int             `gorm:"not null;default:0"`
	SessionCount      int             `gorm:"not null;default:1"`
	BonusSessionCount int             `gorm:"not null;default:0"`
	Status            ItemableStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a new service
func NewService(code, name string, unitPrice valueobject.Money, durationMinutes, sessionCount, bonusSessionCount int) (*Service, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Service code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if sessionCount <= 0 {
		return nil, shared.NewDomainError("INVALID_SESSION_COUNT", "Session count must be positive")
	}
	if durationMinutes < 0 || bonusSessionCount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Duration and bonus sessions cannot be negative")
	}

	return &Service{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		DurationMinutes:   durationMinutes,
		SessionCount:      sessionCount,
		BonusSessionCount: bonusSessionCount,
		Status:            ItemableStatusActive,
	}, nil
}

// IsActive returns true if the service can be attached to new documents
func (s *Service) IsActive() bool {
	return s.Status == ItemableStatusActive
}

// GetUnitPriceMoney returns the unit price as Money value object
func (s *Service) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyVND(s.UnitPrice)
}

// Deactivate removes the service from new-document attachment
func (s *Service) Deactivate() {
	s.Status = ItemableStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
