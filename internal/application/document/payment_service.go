package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentService records money movement against ledger entries
type PaymentService struct {
	scope TransactionScope
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope) *PaymentService {
	return &PaymentService{scope: scope}
}

// ApplyPayment records a collected or paid-out amount against a ledger entry
// and re-derives the paired document's status in the same transaction, so a
// fully handled document completes the moment its money settles.
func (s *PaymentService) ApplyPayment(ctx context.Context, transactionID uuid.UUID, req ApplyPaymentRequest) (*TransactionResponse, error) {
	var resp *TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		txn, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}

		if err := txn.ApplyPayment(valueobject.NewMoneyVND(req.Amount)); err != nil {
			return err
		}
		if err := repos.TransactionRepo().SaveWithLock(ctx, txn); err != nil {
			return err
		}

		if err := RefreshSource(ctx, repos, txn.SourceRef()); err != nil {
			return err
		}

		r := ToTransactionResponse(txn)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetByID retrieves a ledger entry
func (s *PaymentService) GetByID(ctx context.Context, transactionID uuid.UUID) (*TransactionResponse, error) {
	var resp *TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		txn, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		r := ToTransactionResponse(txn)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
