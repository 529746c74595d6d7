package partner

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
)

// PartnerType distinguishes the two business relationships
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "CUSTOMER"
	PartnerTypeSupplier PartnerType = "SUPPLIER"
)

// IsValid returns true if the partner type is valid
func (t PartnerType) IsValid() bool {
	return t == PartnerTypeCustomer || t == PartnerTypeSupplier
}

// PartnerStatus represents the partner lifecycle state
type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "ACTIVE"
	PartnerStatusInactive PartnerStatus = "INACTIVE"
)

// Partner is a customer or supplier the business documents refer to.
type Partner struct {
	shared.BaseAggregateRoot
	Code   string        `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name   string        `gorm:"type:varchar(255);not null"`
	Type   PartnerType   `gorm:"type:varchar(20);not null;index"`
	Phone  string        `gorm:"type:varchar(20)"`
	Email  string        `gorm:"type:varchar(255)"`
	Status PartnerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates an active partner record.
func NewPartner(code, name string, partnerType PartnerType) (*Partner, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner name cannot be empty")
	}
	if !partnerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner type must be CUSTOMER or SUPPLIER")
	}

	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              partnerType,
		Status:            PartnerStatusActive,
	}, nil
}

// IsActive returns true if the partner can be attached to new documents
func (p *Partner) IsActive() bool {
	return p.Status == PartnerStatusActive
}

// Deactivate retires the partner. Existing documents keep their reference.
func (p *Partner) Deactivate() error {
	if p.Status == PartnerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Partner is already inactive")
	}

	p.Status = PartnerStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate restores a retired partner
func (p *Partner) Activate() error {
	if p.Status == PartnerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Partner is already active")
	}

	p.Status = PartnerStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdateContact replaces the contact details
func (p *Partner) UpdateContact(phone, email string) {
	p.Phone = phone
	p.Email = email
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
