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

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order with reserved stock and ledger entry", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "ORD-20240101-0001", resp.Code)
		assert.Equal(t, "PROCESSING", resp.Status)
		assert.Equal(t, 5, resp.Quantity)
		amountEquals(t, 500000, resp.TotalAmount)
		amountEquals(t, 500000, resp.FinalAmount)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "NONE", resp.Items[0].Status)
		assert.Equal(t, "PRD-001", resp.Items[0].Code)

		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "IN", resp.Transactions[0].Direction)
		assert.Equal(t, "UNPAID", resp.Transactions[0].Status)
		amountEquals(t, 500000, resp.Transactions[0].TotalAmount)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 5, reloaded.Quantity)
		assert.Equal(t, 5, reloaded.Reserved)
	})

	t.Run("applies document discount to final amount", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		discount := env.seedPercentDiscount("10 percent", 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			DiscountID: &discount.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})

		require.NoError(t, err)
		amountEquals(t, 500000, resp.TotalAmount)
		amountEquals(t, 450000, resp.FinalAmount)
		require.Len(t, resp.Transactions, 1)
		amountEquals(t, 450000, resp.Transactions[0].TotalAmount)
	})

	t.Run("empty order stays confirmed", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Empty(t, resp.Items)
	})

	t.Run("rejects supplier in the customer slot", func(t *testing.T) {
		env := newTestEnv(t)
		supplier := env.seedPartner("SUP-001", partner.PartnerTypeSupplier)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: supplier.ID})

		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("insufficient stock rolls the whole order back", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 3)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})

		requireDomainCode(t, err, "INSUFFICIENT_STOCK")

		var count int64
		require.NoError(t, env.db.Table("orders").Count(&count).Error)
		assert.Zero(t, count)
		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 3, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})
}

func TestOrderService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("merges the same itemable into one row", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 2},
			},
		})
		require.NoError(t, err)

		resp, err := svc.AddItem(ctx, created.ID, appdocument.AddItemRequest{
			ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 3,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 5, resp.Items[0].Quantity)
		assert.Equal(t, "ADD", resp.Items[0].Adjustment)
		amountEquals(t, 500000, resp.Items[0].TotalAmount)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 5, reloaded.Reserved)
	})

	t.Run("different discount opens a second row", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		discount := env.seedPercentDiscount("10 percent", 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 2},
			},
		})
		require.NoError(t, err)

		resp, err := svc.AddItem(ctx, created.ID, appdocument.AddItemRequest{
			ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 3, DiscountID: &discount.ID,
		})

		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, 5, resp.Quantity)
	})

	t.Run("service lines attach without touching stock", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		service := env.seedService("SRV-001", 250000)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})
		require.NoError(t, err)

		resp, err := svc.AddItem(ctx, created.ID, appdocument.AddItemRequest{
			ItemableType: "SERVICE", ItemableID: service.ID, Quantity: 1,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "SERVICE", resp.Items[0].ItemableType)
		amountEquals(t, 250000, resp.TotalAmount)
	})

	t.Run("rejects unknown itemable types", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})
		require.NoError(t, err)

		_, err = svc.AddItem(ctx, created.ID, appdocument.AddItemRequest{
			ItemableType: "GIFTCARD", ItemableID: customer.ID, Quantity: 1,
		})

		requireDomainCode(t, err, "INVALID_ITEMABLE_TYPE")
	})
}

func TestOrderService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("releases reservation and recomputes totals", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		service := env.seedService("SRV-001", 250000)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
				{ItemableType: "SERVICE", ItemableID: service.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		require.Len(t, created.Items, 2)

		var productItemID = created.Items[0].ID
		if created.Items[0].ItemableType != "PRODUCT" {
			productItemID = created.Items[1].ID
		}

		resp, err := svc.RemoveItem(ctx, created.ID, productItemID)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "SERVICE", resp.Items[0].ItemableType)
		assert.Equal(t, 1, resp.Quantity)
		amountEquals(t, 250000, resp.TotalAmount)
		amountEquals(t, 250000, resp.Transactions[0].TotalAmount)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 10, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})

	t.Run("item from another order is not found", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		first, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		second, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})
		require.NoError(t, err)

		_, err = svc.RemoveItem(ctx, second.ID, first.Items[0].ID)

		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("releases reservations and terminates", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Empty(t, resp.Items)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 10, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID)

		requireDomainCode(t, err, "INVALID_STATE")
	})

	t.Run("collected money gets a compensating refund entry", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewOrderService(env.scope, &seqCodes{})
		payments := appdocument.NewPaymentService(env.scope)

		created, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})
		require.NoError(t, err)

		_, err = payments.ApplyPayment(ctx, created.Transactions[0].ID, appdocument.ApplyPaymentRequest{
			Amount: decimal.NewFromInt(200000),
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		require.Len(t, resp.Transactions, 2)
		assert.Equal(t, "OUT", resp.Transactions[1].Direction)
		assert.Equal(t, "UNPAID", resp.Transactions[1].Status)
		amountEquals(t, 200000, resp.Transactions[1].TotalAmount)
		// The original entry keeps its history untouched
		amountEquals(t, 200000, resp.Transactions[0].PaidAmount)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	customer := env.seedPartner("CUS-001", partner.PartnerTypeCustomer)
	svc := appdocument.NewOrderService(env.scope, &seqCodes{})

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, nil, appdocument.CreateOrderRequest{CustomerID: customer.ID})
		require.NoError(t, err)
	}

	responses, total, err := svc.List(ctx, appdocument.ListFilter{Page: 1, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(3), total)
}
