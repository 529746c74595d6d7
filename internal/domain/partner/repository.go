package partner

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerRepository handles partner persistence
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	// FindActiveByType returns the partner only when it is active and of the
	// expected type
	FindActiveByType(ctx context.Context, id uuid.UUID, partnerType PartnerType) (*Partner, error)
	FindByCode(ctx context.Context, code string) (*Partner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Partner, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, partner *Partner) error
}
