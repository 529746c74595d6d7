package inventory

import (
	"context"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementService records stock movement for line items and manual
// adjustments. Every movement appends to the immutable ledger, mutates the
// product counters under a row lock and re-derives the item and document
// statuses, all in one transaction.
type MovementService struct {
	scope appdocument.TransactionScope
}

// NewMovementService creates a new MovementService
func NewMovementService(scope appdocument.TransactionScope) *MovementService {
	return &MovementService{scope: scope}
}

// HandleItem moves stock for a single item. Product items accept a partial
// quantity; a nil quantity handles everything still outstanding. Service and
// course items transfer all their sessions at once.
func (s *MovementService) HandleItem(ctx context.Context, itemID uuid.UUID, actorID *uuid.UUID, req HandleItemRequest) (*HandleItemResponse, error) {
	var resp *HandleItemResponse
	err := s.scope.Execute(ctx, func(repos appdocument.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindActiveByID(ctx, itemID)
		if err != nil {
			return err
		}

		resp, err = handleOne(ctx, repos, item, req.Quantity, actorID)
		if err != nil {
			return err
		}

		return appdocument.RefreshSource(ctx, repos, item.SourceRef())
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// HandleSource moves stock for every outstanding item on a document
func (s *MovementService) HandleSource(ctx context.Context, source document.SourceRef, actorID *uuid.UUID) ([]HandleItemResponse, error) {
	var responses []HandleItemResponse
	err := s.scope.Execute(ctx, func(repos appdocument.TransactionalRepositories) error {
		items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
		if err != nil {
			return err
		}

		responses = make([]HandleItemResponse, 0, len(items))
		for idx := range items {
			item := &items[idx]
			if item.Status.IsFinal() {
				continue
			}
			resp, err := handleOne(ctx, repos, item, nil, actorID)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}

		return appdocument.RefreshSource(ctx, repos, source)
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// CreateAdjustment corrects a product's available stock outside any document
// and appends the correction to the ledger. Reserved stock is never touched.
func (s *MovementService) CreateAdjustment(ctx context.Context, actorID *uuid.UUID, req CreateAdjustmentRequest) (*RecordResponse, error) {
	action, err := inventory.ParseInventoryAction(req.Action)
	if err != nil {
		return nil, err
	}
	if action != inventory.InventoryActionAdjustPlus && action != inventory.InventoryActionAdjustMinus {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustments must use ADJUST_PLUS or ADJUST_MINUS")
	}

	var resp *RecordResponse
	err = s.scope.Execute(ctx, func(repos appdocument.TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		delta := req.Quantity
		if action == inventory.InventoryActionAdjustMinus {
			delta = -delta
		}
		if err := product.Adjust(delta); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		record, err := inventory.NewAdjustmentRecord(req.ProductID, action, req.Quantity, req.Note, actorID)
		if err != nil {
			return err
		}
		if err := repos.InventoryRepo().Create(ctx, record); err != nil {
			return err
		}

		r := ToRecordResponse(record)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ListByProduct returns a product's movement history
func (s *MovementService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]RecordResponse, error) {
	var responses []RecordResponse
	err := s.scope.Execute(ctx, func(repos appdocument.TransactionalRepositories) error {
		records, err := repos.InventoryRepo().FindByProduct(ctx, productID, filter)
		if err != nil {
			return err
		}

		responses = make([]RecordResponse, 0, len(records))
		for idx := range records {
			responses = append(responses, ToRecordResponse(&records[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

func handleOne(ctx context.Context, repos appdocument.TransactionalRepositories, item *document.Item, requested *int, actorID *uuid.UUID) (*HandleItemResponse, error) {
	switch item.ItemableType {
	case document.ItemableTypeProduct:
		return handleProductItem(ctx, repos, item, requested, actorID)
	case document.ItemableTypeService, document.ItemableTypeCourse:
		return handleSessionItem(ctx, repos, item, requested)
	}
	return nil, shared.NewDomainError("INVALID_ITEMABLE_TYPE", "Unrecognized itemable type")
}

// handleProductItem moves physical stock. The already-handled quantity is
// always re-summed from the ledger rather than read from any cached column,
// so repeated or concurrent handling can never double-move stock.
func handleProductItem(ctx context.Context, repos appdocument.TransactionalRepositories, item *document.Item, requested *int, actorID *uuid.UUID) (*HandleItemResponse, error) {
	action, fullStatus, err := movementPlan(ctx, repos, item.SourceRef())
	if err != nil {
		return nil, err
	}

	handled, err := repos.InventoryRepo().SumQuantityByItemAndAction(ctx, item.ID, action)
	if err != nil {
		return nil, err
	}
	remaining := item.Quantity - handled
	if remaining < 0 {
		return nil, shared.ErrLedgerOvershoot
	}
	if remaining == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Item is already fully handled")
	}

	quantity := remaining
	if requested != nil {
		if *requested <= 0 || *requested > remaining {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity exceeds the outstanding quantity")
		}
		quantity = *requested
	}

	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, item.ItemableID)
	if err != nil {
		return nil, err
	}
	if action == inventory.InventoryActionExport {
		err = product.CommitExport(quantity)
	} else {
		err = product.Import(quantity)
	}
	if err != nil {
		return nil, err
	}
	if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	record, err := inventory.NewItemRecord(item.ItemableID, item.ID, action, quantity, actorID)
	if err != nil {
		return nil, err
	}
	if err := repos.InventoryRepo().Create(ctx, record); err != nil {
		return nil, err
	}

	newHandled := handled + quantity
	status, err := document.DeriveStatus(item.ItemableType, fullStatus, newHandled, item.Quantity)
	if err != nil {
		return nil, err
	}
	if err := item.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	recordResp := ToRecordResponse(record)
	return &HandleItemResponse{
		ItemID:          item.ID,
		ItemStatus:      string(item.Status),
		HandledQuantity: newHandled,
		TotalQuantity:   item.Quantity,
		Record:          &recordResp,
	}, nil
}

// handleSessionItem marks a service or course as delivered. Sessions move in
// one step and leave no stock ledger rows.
func handleSessionItem(ctx context.Context, repos appdocument.TransactionalRepositories, item *document.Item, requested *int) (*HandleItemResponse, error) {
	if requested != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Session items transfer in full")
	}
	if item.Status.IsFinal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Item is already fully handled")
	}

	if err := item.ChangeStatus(document.ItemStatusTransferred); err != nil {
		return nil, err
	}
	if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	return &HandleItemResponse{
		ItemID:          item.ID,
		ItemStatus:      string(item.Status),
		HandledQuantity: item.Quantity,
		TotalQuantity:   item.Quantity,
	}, nil
}

// movementPlan maps a source document to the stock action its items perform
// and the item status that marks full handling.
func movementPlan(ctx context.Context, repos appdocument.TransactionalRepositories, source document.SourceRef) (inventory.InventoryAction, document.ItemStatus, error) {
	switch source.Type {
	case document.SourceTypeOrder:
		return inventory.InventoryActionExport, document.ItemStatusExported, nil

	case document.SourceTypePurchase:
		return inventory.InventoryActionImport, document.ItemStatusImported, nil

	case document.SourceTypeConsignment:
		consignment, err := repos.ConsignmentRepo().FindByID(ctx, source.ID)
		if err != nil {
			return "", "", err
		}
		if consignment.Direction == document.ConsignmentDirectionOut {
			return inventory.InventoryActionExport, document.ItemStatusExported, nil
		}
		return inventory.InventoryActionImport, document.ItemStatusImported, nil
	}

	return "", "", shared.NewDomainError("INVALID_SOURCE_TYPE", "Unrecognized source type")
}
