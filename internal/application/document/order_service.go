package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CodeGenerator produces unique human-readable document codes
type CodeGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

var orderAttachPolicy = attachPolicy{allowDiscount: true, reserveStock: true}

// OrderService handles sales order business operations
type OrderService struct {
	scope TransactionScope
	codes CodeGenerator
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, codes CodeGenerator) *OrderService {
	return &OrderService{scope: scope, codes: codes}
}

// Create opens an order for a customer and attaches its initial items. The
// order, its items, the stock reservations and the money ledger entry are
// all written in one transaction.
func (s *OrderService) Create(ctx context.Context, actorID *uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	code, err := s.codes.Next(ctx, "ORD")
	if err != nil {
		return nil, err
	}

	var resp *OrderResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.PartnerRepo().FindActiveByType(ctx, req.CustomerID, partner.PartnerTypeCustomer); err != nil {
			return err
		}

		order, err := document.NewOrder(code, req.CustomerID, actorID)
		if err != nil {
			return err
		}
		order.Note = req.Note
		if req.DiscountID != nil {
			if err := order.ApplyDiscount(*req.DiscountID); err != nil {
				return err
			}
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		source := order.SourceRef()
		for _, itemReq := range req.Items {
			if _, err := attachItem(ctx, repos, source, itemReq, orderAttachPolicy); err != nil {
				return err
			}
		}

		txn, err := document.NewTransaction(source, document.TransactionDirectionIn, valueobject.ZeroVND())
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, txn); err != nil {
			return err
		}

		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadOrderResponse(ctx, repos, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetByID retrieves an order with its items and ledger entries
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		resp, err = loadOrderResponse(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter ListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var responses []OrderResponse
	var count int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.OrderRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err = repos.OrderRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		responses = make([]OrderResponse, 0, len(orders))
		for idx := range orders {
			responses = append(responses, ToOrderResponse(&orders[idx], nil, nil))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return responses, count, nil
}

// AddItem attaches an itemable to an existing order
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() || order.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed order")
		}

		source := order.SourceRef()
		if _, err := attachItem(ctx, repos, source, req, orderAttachPolicy); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadOrderResponse(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// RemoveItem soft-deletes an unhandled item and releases its reservation
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() || order.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a closed order")
		}

		source := order.SourceRef()
		if err := removeItem(ctx, repos, source, itemID, true); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadOrderResponse(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Cancel terminates the order. Unexported reservations flow back to stock,
// open appointments are released, and any money already collected gets a
// compensating refund entry on the ledger. The original ledger entry is
// never rewritten.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		source := order.SourceRef()
		if err := deactivateItems(ctx, repos, source, true); err != nil {
			return err
		}

		txn, err := repos.TransactionRepo().FindPrimaryBySource(ctx, source)
		if err != nil && !shared.IsNotFound(err) {
			return err
		}
		if txn != nil && txn.PaidAmount.IsPositive() {
			comp := document.NewCompensation(txn)
			if err := repos.TransactionRepo().Save(ctx, comp); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		resp, err = loadOrderResponse(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func loadOrderResponse(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := repos.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	source := order.SourceRef()
	items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
	if err != nil {
		return nil, err
	}
	txns, err := repos.TransactionRepo().FindBySource(ctx, source)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, items, txns)
	return &resp, nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PartnerID != "" {
		domainFilter.Filters["partner_id"] = filter.PartnerID
	}
	return domainFilter
}
