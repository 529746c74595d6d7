package scheduling

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentRepository handles appointment persistence
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]Appointment, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Appointment, error)
	Save(ctx context.Context, appointment *Appointment) error
	// CancelScheduledByItem cancels every open booking for an item. Used when
	// the backing item is removed or its document is cancelled.
	CancelScheduledByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}
