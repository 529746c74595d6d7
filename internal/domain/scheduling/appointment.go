package scheduling

import (
	"time"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentStatus represents the booking lifecycle
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid returns true if the status is a valid AppointmentStatus
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment books a service session against a purchased line item. When the
// backing item is disabled its open appointments are cancelled in the same
// transaction.
type Appointment struct {
	shared.BaseAggregateRoot
	ItemID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	StartsAt   time.Time         `gorm:"not null;index"`
	EndsAt     time.Time         `gorm:"not null"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED'"`
	Note       string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment books a session window for a line item.
func NewAppointment(itemID, customerID uuid.UUID, startsAt, endsAt time.Time) (*Appointment, error) {
	if itemID == uuid.Nil || customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item and customer IDs cannot be empty")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Appointment must end after it starts")
	}

	return &Appointment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		CustomerID:        customerID,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Status:            AppointmentStatusScheduled,
	}, nil
}

// Complete marks the session as delivered
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled appointments can be completed")
	}

	a.Status = AppointmentStatusCompleted
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Cancel releases the booking
func (a *Appointment) Cancel() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled appointments can be cancelled")
	}

	a.Status = AppointmentStatusCancelled
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}
