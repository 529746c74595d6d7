package persistence

import (
	"context"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/scheduling"
	"gorm.io/gorm"
)

// GormTransactionScope executes functions inside a gorm transaction with a
// full repository bundle bound to it.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. Repositories handed to fn
// all share the transaction; fn returning an error rolls everything back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appdocument.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) ServiceRepo() catalog.ServiceRepository {
	return NewGormServiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) CourseRepo() catalog.CourseRepository {
	return NewGormCourseRepository(r.tx)
}

func (r *gormTransactionalRepositories) DiscountRepo() catalog.DiscountRepository {
	return NewGormDiscountRepository(r.tx)
}

func (r *gormTransactionalRepositories) PartnerRepo() partner.PartnerRepository {
	return NewGormPartnerRepository(r.tx)
}

func (r *gormTransactionalRepositories) ItemRepo() document.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() document.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseRepo() document.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *gormTransactionalRepositories) ConsignmentRepo() document.ConsignmentRepository {
	return NewGormConsignmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) TransactionRepo() document.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

func (r *gormTransactionalRepositories) AppointmentRepo() scheduling.AppointmentRepository {
	return NewGormAppointmentRepository(r.tx)
}

// Ensure the scope satisfies the application contract
var _ appdocument.TransactionScope = (*GormTransactionScope)(nil)
var _ appdocument.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
