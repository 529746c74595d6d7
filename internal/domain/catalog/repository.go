package catalog

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product and acquires a row lock for the
	// duration of the enclosing transaction. Every counter mutation must go
	// through this read.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByID finds a product that is active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ServiceRepository defines the interface for service persistence
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Service, error)
	Save(ctx context.Context, service *Service) error
}

// CourseRepository defines the interface for course persistence
type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Course, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Course, error)
	Save(ctx context.Context, course *Course) error
}

// DiscountRepository defines the interface for discount persistence
type DiscountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	// FindActiveByID finds a discount with ACTIVE status; inactive or
	// expired discounts are reported as not found.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Discount, error)
	Save(ctx context.Context, discount *Discount) error
}
