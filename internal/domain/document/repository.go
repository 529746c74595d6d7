package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository handles line item persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindActiveByID returns the item only when it is still active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindActiveBySource returns every active item attached to a document
	FindActiveBySource(ctx context.Context, source SourceRef) ([]Item, error)
	// FindActiveBySourceAndItemable locates the merge target for an add
	FindActiveBySourceAndItemable(ctx context.Context, source SourceRef, itemable ItemableRef) (*Item, error)
	Save(ctx context.Context, item *Item) error
	// SaveWithLock persists with an optimistic-lock version check
	SaveWithLock(ctx context.Context, item *Item) error
}

// OrderRepository handles order document persistence
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCode(ctx context.Context, code string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
}

// PurchaseRepository handles purchase document persistence
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByCode(ctx context.Context, code string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}

// ConsignmentRepository handles consignment document persistence
type ConsignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Consignment, error)
	FindByCode(ctx context.Context, code string) (*Consignment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Consignment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, consignment *Consignment) error
	SaveWithLock(ctx context.Context, consignment *Consignment) error
}

// TransactionRepository handles money ledger persistence
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// FindBySource returns every ledger entry paired with a document,
	// original first, compensations after
	FindBySource(ctx context.Context, source SourceRef) ([]Transaction, error)
	// FindPrimaryBySource returns the original (non-compensating) entry
	FindPrimaryBySource(ctx context.Context, source SourceRef) (*Transaction, error)
	Save(ctx context.Context, txn *Transaction) error
	SaveWithLock(ctx context.Context, txn *Transaction) error
}
