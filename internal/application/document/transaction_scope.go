package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/scheduling"
)

// TransactionScope runs a function with every repository bound to one
// database transaction. The function's error rolls everything back; success
// commits atomically. Document mutations always run inside a scope so the
// item rows, the document aggregates, the money ledger and the stock
// counters can never drift apart.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository within the
// active transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	ServiceRepo() catalog.ServiceRepository
	CourseRepo() catalog.CourseRepository
	DiscountRepo() catalog.DiscountRepository
	PartnerRepo() partner.PartnerRepository
	ItemRepo() document.ItemRepository
	OrderRepo() document.OrderRepository
	PurchaseRepo() document.PurchaseRepository
	ConsignmentRepo() document.ConsignmentRepository
	TransactionRepo() document.TransactionRepository
	InventoryRepo() inventory.InventoryRecordRepository
	AppointmentRepo() scheduling.AppointmentRepository
}
