package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ConsignmentService handles partner stock-holding documents
type ConsignmentService struct {
	scope TransactionScope
	codes CodeGenerator
}

// NewConsignmentService creates a new ConsignmentService
func NewConsignmentService(scope TransactionScope, codes CodeGenerator) *ConsignmentService {
	return &ConsignmentService{scope: scope, codes: codes}
}

// consignmentPolicy picks the attach behaviour from the stock direction.
// OUT consignments ship our goods and must reserve them up front.
func consignmentPolicy(direction document.ConsignmentDirection) attachPolicy {
	return attachPolicy{
		productOnly:  true,
		reserveStock: direction == document.ConsignmentDirectionOut,
	}
}

// Create opens a consignment with its initial items. The money direction
// follows the stock direction: shipping goods out collects money, taking
// goods in owes it.
func (s *ConsignmentService) Create(ctx context.Context, actorID *uuid.UUID, req CreateConsignmentRequest) (*ConsignmentResponse, error) {
	direction, err := document.ParseConsignmentDirection(req.Direction)
	if err != nil {
		return nil, err
	}
	code, err := s.codes.Next(ctx, "CSG")
	if err != nil {
		return nil, err
	}

	var resp *ConsignmentResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.PartnerRepo().FindByID(ctx, req.PartnerID); err != nil {
			return err
		}

		consignment, err := document.NewConsignment(code, req.PartnerID, direction, req.CommissionRate, actorID)
		if err != nil {
			return err
		}
		consignment.Note = req.Note
		if err := repos.ConsignmentRepo().Save(ctx, consignment); err != nil {
			return err
		}

		source := consignment.SourceRef()
		policy := consignmentPolicy(direction)
		for _, itemReq := range req.Items {
			if _, err := attachItem(ctx, repos, source, itemReq, policy); err != nil {
				return err
			}
		}

		txn, err := document.NewTransaction(source, consignment.TransactionDirection(), valueobject.ZeroVND())
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, txn); err != nil {
			return err
		}

		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadConsignmentResponse(ctx, repos, consignment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetByID retrieves a consignment with its items and ledger entries
func (s *ConsignmentService) GetByID(ctx context.Context, consignmentID uuid.UUID) (*ConsignmentResponse, error) {
	var resp *ConsignmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		resp, err = loadConsignmentResponse(ctx, repos, consignmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List retrieves consignments with filtering and pagination
func (s *ConsignmentService) List(ctx context.Context, filter ListFilter) ([]ConsignmentResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var responses []ConsignmentResponse
	var count int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		consignments, err := repos.ConsignmentRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err = repos.ConsignmentRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		responses = make([]ConsignmentResponse, 0, len(consignments))
		for idx := range consignments {
			responses = append(responses, ToConsignmentResponse(&consignments[idx], nil, nil))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return responses, count, nil
}

// AddItem attaches a product to an existing consignment
func (s *ConsignmentService) AddItem(ctx context.Context, consignmentID uuid.UUID, req AddItemRequest) (*ConsignmentResponse, error) {
	var resp *ConsignmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		consignment, err := repos.ConsignmentRepo().FindByID(ctx, consignmentID)
		if err != nil {
			return err
		}
		if consignment.Status.IsTerminal() || consignment.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed consignment")
		}

		source := consignment.SourceRef()
		if _, err := attachItem(ctx, repos, source, req, consignmentPolicy(consignment.Direction)); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadConsignmentResponse(ctx, repos, consignmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// RemoveItem soft-deletes an unhandled item, releasing any reservation
func (s *ConsignmentService) RemoveItem(ctx context.Context, consignmentID, itemID uuid.UUID) (*ConsignmentResponse, error) {
	var resp *ConsignmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		consignment, err := repos.ConsignmentRepo().FindByID(ctx, consignmentID)
		if err != nil {
			return err
		}
		if consignment.Status.IsTerminal() || consignment.Status == document.DocumentStatusCompleted {
			return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a closed consignment")
		}

		source := consignment.SourceRef()
		releaseStock := consignment.Direction == document.ConsignmentDirectionOut
		if err := removeItem(ctx, repos, source, itemID, releaseStock); err != nil {
			return err
		}
		if err := RefreshSource(ctx, repos, source); err != nil {
			return err
		}

		resp, err = loadConsignmentResponse(ctx, repos, consignmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Cancel terminates the consignment and compensates any settled money
func (s *ConsignmentService) Cancel(ctx context.Context, consignmentID uuid.UUID) (*ConsignmentResponse, error) {
	var resp *ConsignmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		consignment, err := repos.ConsignmentRepo().FindByID(ctx, consignmentID)
		if err != nil {
			return err
		}
		if err := consignment.Cancel(); err != nil {
			return err
		}

		source := consignment.SourceRef()
		releaseStock := consignment.Direction == document.ConsignmentDirectionOut
		if err := deactivateItems(ctx, repos, source, releaseStock); err != nil {
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

		if err := repos.ConsignmentRepo().SaveWithLock(ctx, consignment); err != nil {
			return err
		}

		resp, err = loadConsignmentResponse(ctx, repos, consignmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func loadConsignmentResponse(ctx context.Context, repos TransactionalRepositories, consignmentID uuid.UUID) (*ConsignmentResponse, error) {
	consignment, err := repos.ConsignmentRepo().FindByID(ctx, consignmentID)
	if err != nil {
		return nil, err
	}

	source := consignment.SourceRef()
	items, err := repos.ItemRepo().FindActiveBySource(ctx, source)
	if err != nil {
		return nil, err
	}
	txns, err := repos.TransactionRepo().FindBySource(ctx, source)
	if err != nil {
		return nil, err
	}

	resp := ToConsignmentResponse(consignment, items, txns)
	return &resp, nil
}
