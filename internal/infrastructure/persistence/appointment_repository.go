package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/salonops/backend/internal/domain/scheduling"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements AppointmentRepository using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByID finds an appointment by its ID
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	var appointment scheduling.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByItem returns every booking against a line item
func (r *GormAppointmentRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("starts_at ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindByCustomer returns a customer's bookings
func (r *GormAppointmentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	query := applyFilter(
		r.db.WithContext(ctx).Model(&scheduling.Appointment{}).Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Save creates or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// CancelScheduledByItem cancels every open booking for an item in one update
func (r *GormAppointmentRepository) CancelScheduledByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&scheduling.Appointment{}).
		Where("item_id = ? AND status = ?", itemID, scheduling.AppointmentStatusScheduled).
		Updates(map[string]interface{}{
			"status":     scheduling.AppointmentStatusCancelled,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormAppointmentRepository implements AppointmentRepository
var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
