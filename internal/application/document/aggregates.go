package document

import (
	"context"

	"github.com/salonops/backend/internal/application/pricing"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// attachPolicy captures how a document type treats incoming items
type attachPolicy struct {
	// allowDiscount permits line-level discount references. Only customer
	// orders price through the discount catalog; purchases and consignments
	// settle at the snapshot price.
	allowDiscount bool
	// reserveStock moves product quantity into reservation at attach time.
	// Set for documents whose handling exports stock.
	reserveStock bool
	// productOnly restricts the document to physical goods. Purchases and
	// consignments never carry services or courses.
	productOnly bool
}

func sameDiscount(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// attachItem adds a quantity of one itemable to a document. An active item
// row for the same itemable and discount absorbs the quantity; otherwise a
// new row is created with a freshly frozen snapshot. Reservation happens in
// the same transaction so stock can never be promised twice.
func attachItem(ctx context.Context, repos TransactionalRepositories, source document.SourceRef, req AddItemRequest, policy attachPolicy) (*document.Item, error) {
	itemableType, err := document.ParseItemableType(req.ItemableType)
	if err != nil {
		return nil, err
	}
	ref, err := document.NewItemableRef(itemableType, req.ItemableID)
	if err != nil {
		return nil, err
	}
	if req.DiscountID != nil && !policy.allowDiscount {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discounts are only valid on order items")
	}
	if policy.productOnly && ref.Type != document.ItemableTypeProduct {
		return nil, shared.NewDomainError("INVALID_INPUT", "Only products can be attached to this document")
	}

	resolver := pricing.NewDiscountResolver(repos.DiscountRepo())

	existing, err := repos.ItemRepo().FindActiveBySourceAndItemable(ctx, source, ref)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	if existing != nil && !existing.Status.IsFinal() && sameDiscount(existing.DiscountID, req.DiscountID) {
		// Merged rows reprice over the combined quantity at the snapshot
		// price, so catalog edits after attachment never leak in.
		unit := valueobject.NewMoneyVND(existing.Snapshot.UnitPrice)
		price, err := resolver.Resolve(ctx, unit, existing.Quantity+req.Quantity, req.DiscountID)
		if err != nil {
			return nil, err
		}
		if err := reserveIfNeeded(ctx, repos, ref, req.Quantity, policy); err != nil {
			return nil, err
		}
		if err := existing.Merge(req.Quantity, price.TotalAmount, price.FinalAmount); err != nil {
			return nil, err
		}
		if err := repos.ItemRepo().SaveWithLock(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	itemable, err := locateItemable(ctx, repos, ref)
	if err != nil {
		return nil, err
	}
	price, err := resolver.Resolve(ctx, itemable.UnitPrice, req.Quantity, req.DiscountID)
	if err != nil {
		return nil, err
	}
	if err := reserveIfNeeded(ctx, repos, ref, req.Quantity, policy); err != nil {
		return nil, err
	}

	item, err := document.NewItem(source, ref, req.Quantity, price.TotalAmount, price.FinalAmount, price.DiscountID, itemable.Snapshot)
	if err != nil {
		return nil, err
	}
	if err := repos.ItemRepo().Save(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func reserveIfNeeded(ctx context.Context, repos TransactionalRepositories, ref document.ItemableRef, quantity int, policy attachPolicy) error {
	if !policy.reserveStock || ref.Type != document.ItemableTypeProduct {
		return nil
	}

	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, ref.ID)
	if err != nil {
		return err
	}
	if err := product.Reserve(quantity); err != nil {
		return err
	}

	return repos.ProductRepo().SaveWithLock(ctx, product)
}

// removeItem soft-deletes an item that has no recorded movement yet. Reserved
// product stock flows back and open appointments are released.
func removeItem(ctx context.Context, repos TransactionalRepositories, source document.SourceRef, itemID uuid.UUID, releaseStock bool) error {
	item, err := repos.ItemRepo().FindActiveByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.SourceID != source.ID || item.SourceType != source.Type {
		return shared.ErrNotFound
	}
	// Once the ledger has touched an item, removal is closed off; cancelling
	// the whole document is the path that unwinds partially handled items.
	if item.Status != document.ItemStatusNone {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove an item with recorded movement")
	}

	if releaseStock && item.ItemableType == document.ItemableTypeProduct {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, item.ItemableID)
		if err != nil {
			return err
		}
		if err := product.ReleaseReservation(item.Quantity); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}
	}

	if item.ItemableType == document.ItemableTypeService {
		if _, err := repos.AppointmentRepo().CancelScheduledByItem(ctx, item.ID); err != nil {
			return err
		}
	}

	if err := item.Disable(document.AdjustmentTypeRemove); err != nil {
		return err
	}

	return repos.ItemRepo().SaveWithLock(ctx, item)
}

// deactivateItems disables every active item during document cancellation.
// For export-direction documents the not-yet-exported portion of each product
// reservation flows back to available stock; quantity already shipped stays
// on the ledger untouched.
func deactivateItems(ctx context.Context, repos TransactionalRepositories, source document.SourceRef, releaseStock bool) error {
	items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
	if err != nil {
		return err
	}

	for idx := range items {
		item := &items[idx]

		if releaseStock && item.ItemableType == document.ItemableTypeProduct {
			handled, err := repos.InventoryRepo().SumQuantityByItemAndAction(ctx, item.ID, inventory.InventoryActionExport)
			if err != nil {
				return err
			}
			unhandled := item.Quantity - handled
			if unhandled < 0 {
				return shared.ErrLedgerOvershoot
			}
			if unhandled > 0 {
				product, err := repos.ProductRepo().FindByIDForUpdate(ctx, item.ItemableID)
				if err != nil {
					return err
				}
				if err := product.ReleaseReservation(unhandled); err != nil {
					return err
				}
				if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
					return err
				}
			}
		}

		if item.ItemableType == document.ItemableTypeService {
			if _, err := repos.AppointmentRepo().CancelScheduledByItem(ctx, item.ID); err != nil {
				return err
			}
		}

		if err := item.Disable(document.AdjustmentTypeCancelled); err != nil {
			return err
		}
		if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

// RefreshSource recomputes a document's denormalized aggregates, resets the
// money ledger principal and re-derives the document status. Called inside
// the same transaction as any item or movement change.
func RefreshSource(ctx context.Context, repos TransactionalRepositories, source document.SourceRef) error {
	items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
	if err != nil {
		return err
	}

	quantity := 0
	total := valueobject.ZeroVND()
	final := valueobject.ZeroVND()
	for idx := range items {
		quantity += items[idx].Quantity
		total = total.MustAdd(items[idx].GetTotalAmountMoney())
		final = final.MustAdd(items[idx].GetFinalAmountMoney())
	}

	txn, err := repos.TransactionRepo().FindPrimaryBySource(ctx, source)
	if err != nil {
		if !shared.IsNotFound(err) {
			return err
		}
		txn = nil
	}

	switch source.Type {
	case document.SourceTypeOrder:
		order, err := repos.OrderRepo().FindByID(ctx, source.ID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return nil
		}
		if order.DiscountID != nil {
			discount, err := repos.DiscountRepo().FindActiveByID(ctx, *order.DiscountID)
			if err != nil {
				return err
			}
			final = final.MustSubtract(discount.ComputeAmount(final)).ClampToZero()
		}
		if err := order.ApplyAggregates(quantity, total, final); err != nil {
			return err
		}
		if err := resetPrimaryTotal(ctx, repos, txn, order.GetFinalAmountMoney()); err != nil {
			return err
		}
		order.RefreshStatus(items, txn)
		return repos.OrderRepo().SaveWithLock(ctx, order)

	case document.SourceTypePurchase:
		purchase, err := repos.PurchaseRepo().FindByID(ctx, source.ID)
		if err != nil {
			return err
		}
		if purchase.Status.IsTerminal() {
			return nil
		}
		if err := purchase.ApplyAggregates(quantity, total); err != nil {
			return err
		}
		if err := resetPrimaryTotal(ctx, repos, txn, purchase.GetFinalAmountMoney()); err != nil {
			return err
		}
		purchase.RefreshStatus(items, txn)
		return repos.PurchaseRepo().SaveWithLock(ctx, purchase)

	case document.SourceTypeConsignment:
		consignment, err := repos.ConsignmentRepo().FindByID(ctx, source.ID)
		if err != nil {
			return err
		}
		if consignment.Status.IsTerminal() {
			return nil
		}
		if err := consignment.ApplyAggregates(quantity, total); err != nil {
			return err
		}
		if err := resetPrimaryTotal(ctx, repos, txn, consignment.GetFinalAmountMoney()); err != nil {
			return err
		}
		consignment.RefreshStatus(items, txn)
		return repos.ConsignmentRepo().SaveWithLock(ctx, consignment)
	}

	return shared.NewDomainError("INVALID_SOURCE_TYPE", "Unrecognized source type")
}

func resetPrimaryTotal(ctx context.Context, repos TransactionalRepositories, txn *document.Transaction, total valueobject.Money) error {
	if txn == nil {
		return nil
	}
	if err := txn.ResetTotal(total); err != nil {
		return err
	}
	return repos.TransactionRepo().SaveWithLock(ctx, txn)
}
