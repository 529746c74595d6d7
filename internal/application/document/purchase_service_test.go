package document_test

import (
	"context"
	"testing"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates purchase with an outgoing ledger entry", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 80000, 0)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID: supplier.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 20},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PUR-20240101-0001", resp.Code)
		assert.Equal(t, "PROCESSING", resp.Status)
		amountEquals(t, 1600000, resp.TotalAmount)
		amountEquals(t, 1600000, resp.FinalAmount)

		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "OUT", resp.Transactions[0].Direction)
		amountEquals(t, 1600000, resp.Transactions[0].TotalAmount)

		// Incoming goods are not counted until the movement is handled.
		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 0, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})

	t.Run("flat discount reduces the payable amount", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 80000, 0)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})
		discount := decimal.NewFromInt(100000)

		resp, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID:     supplier.ID,
			DiscountAmount: &discount,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 20},
			},
		})

		require.NoError(t, err)
		amountEquals(t, 1600000, resp.TotalAmount)
		amountEquals(t, 100000, resp.DiscountAmount)
		amountEquals(t, 1500000, resp.FinalAmount)
		amountEquals(t, 1500000, resp.Transactions[0].TotalAmount)
	})

	t.Run("rejects service lines", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		service := env.seedService("SRV-001", 250000)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID: supplier.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "SERVICE", ItemableID: service.ID, Quantity: 1},
			},
		})

		requireDomainCode(t, err, "INVALID_INPUT")
	})

	t.Run("rejects line discounts", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 80000, 0)
		lineDiscount := env.seedPercentDiscount("10 percent", 10)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID: supplier.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 1, DiscountID: &lineDiscount.ID},
			},
		})

		requireDomainCode(t, err, "INVALID_INPUT")
	})

	t.Run("rejects customer in the supplier slot", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{SupplierID: customer.ID})

		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestPurchaseService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
	product := env.seedProduct("PRD-001", 80000, 7)
	svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

	created, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []appdocument.AddItemRequest{
			{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(ctx, created.ID, created.Items[0].ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "CONFIRMED", resp.Status)
	amountEquals(t, 0, resp.TotalAmount)

	// Purchases never held a reservation, so stock is untouched either way.
	reloaded := env.reloadProduct(product.ID)
	assert.Equal(t, 7, reloaded.Quantity)
	assert.Equal(t, 0, reloaded.Reserved)
}

func TestPurchaseService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("terminates and deactivates items", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 80000, 0)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID: supplier.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 3},
			},
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Empty(t, resp.Items)
	})

	t.Run("paid amount triggers a compensating entry", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 80000, 0)
		svc := appdocument.NewPurchaseService(env.scope, &seqCodes{})
		payments := appdocument.NewPaymentService(env.scope)

		created, err := svc.Create(ctx, nil, appdocument.CreatePurchaseRequest{
			SupplierID: supplier.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 3},
			},
		})
		require.NoError(t, err)

		_, err = payments.ApplyPayment(ctx, created.Transactions[0].ID, appdocument.ApplyPaymentRequest{
			Amount: decimal.NewFromInt(240000),
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		require.Len(t, resp.Transactions, 2)
		// Money went out to the supplier, so the compensation flows back in.
		assert.Equal(t, "IN", resp.Transactions[1].Direction)
		amountEquals(t, 240000, resp.Transactions[1].TotalAmount)
	})
}
