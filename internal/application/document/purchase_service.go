package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Purchases receive stock, so nothing is reserved at attach time and line
// discounts do not apply; suppliers negotiate a flat document discount.
var purchaseAttachPolicy = attachPolicy{productOnly: true}

// PurchaseService handles procurement document business operations
type PurchaseService struct {
	scope TransactionScope
	codes CodeGenerator
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, codes CodeGenerator) *PurchaseService {
	return &PurchaseService{scope: scope, codes: codes}
}

// Create opens a purchase for a supplier with its initial items. Money flows
// out, so the paired ledger entry has the OUT direction.
func (s *PurchaseService) Create(ctx context.Context, actorID *uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	code, err := s.codes.Next(ctx, "PUR")
	if err != nil {
		return nil, err
	}

	var resp *PurchaseResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.PartnerRepo().FindActiveByType(ctx, req.SupplierID, partner.PartnerTypeSupplier); err != nil {
			return err
		}

		purchase, err := document.NewPurchase(code, req.SupplierID, actorID)
		if err != nil {
			return err
		}
		purchase.Note = req.Note
		if req.DiscountAmount != nil {
			if err := purchase.SetDiscountAmount(valueobject.NewMoneyVND(*req.DiscountAmount)); err != nil {
				return err
			}
		}
		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}

		source := purchase.SourceRef()
		for _, itemReq := range req.Items {
			if _, err := attachItem(ctx, repos, source, itemReq, purchaseAttachPolicy); err != nil {
				return err
			}
		}

		txn, err := document.NewTransaction(source, document.TransactionDirectionOut, valueobject.ZeroVND())
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, txn); err != nil {
			return err
		}

		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadPurchaseResponse(ctx, repos, purchase.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetByID retrieves a purchase with its items and ledger entries
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		resp, err = loadPurchaseResponse(ctx, repos, purchaseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter ListFilter) ([]PurchaseResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var responses []PurchaseResponse
	var count int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchases, err := repos.PurchaseRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err = repos.PurchaseRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		responses = make([]PurchaseResponse, 0, len(purchases))
		for idx := range purchases {
			responses = append(responses, ToPurchaseResponse(&purchases[idx], nil, nil))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return responses, count, nil
}

// AddItem attaches an itemable to an existing purchase
func (s *PurchaseService) AddItem(ctx context.Context, purchaseID uuid.UUID, req AddItemRequest) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if purchase.Status.IsTerminal() || purchase.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed purchase")
		}

		source := purchase.SourceRef()
		if _, err := attachItem(ctx, repos, source, req, purchaseAttachPolicy); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadPurchaseResponse(ctx, repos, purchaseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// RemoveItem soft-deletes an unhandled item
func (s *PurchaseService) RemoveItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if purchase.Status.IsTerminal() || purchase.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a closed purchase")
		}

		source := purchase.SourceRef()
		if err := removeItem(ctx, repos, source, itemID, false); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadPurchaseResponse(ctx, repos, purchaseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Cancel terminates the purchase. Stock already imported stays on the ledger;
// money already paid out gets a compensating collection entry.
func (s *PurchaseService) Cancel(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := purchase.Cancel(); err != nil {
			return err
		}

		source := purchase.SourceRef()
		if err := deactivateItems(ctx, repos, source, false); err != nil {
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

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		resp, err = loadPurchaseResponse(ctx, repos, purchaseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func loadPurchaseResponse(ctx context.Context, repos TransactionalRepositories, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	source := purchase.SourceRef()
	items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
	if err != nil {
		return nil, err
	}
	txns, err := repos.TransactionRepo().FindBySource(ctx, source)
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseResponse(purchase, items, txns)
	return &resp, nil
}
