package document_test

import (
	"context"
	"testing"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsignmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("outbound consignment reserves stock and collects money", func(t *testing.T) {
		env := newTestEnv(t)
		consignee := env.seedPartner("PTN-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID:      consignee.ID,
			Direction:      "OUT",
			CommissionRate: decimal.NewFromInt(10),
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 4},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "CSG-20240101-0001", resp.Code)
		assert.Equal(t, "OUT", resp.Direction)
		amountEquals(t, 400000, resp.TotalAmount)
		// 10 percent commission stays with the consignee.
		amountEquals(t, 360000, resp.FinalAmount)

		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "IN", resp.Transactions[0].Direction)
		amountEquals(t, 360000, resp.Transactions[0].TotalAmount)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 6, reloaded.Quantity)
		assert.Equal(t, 4, reloaded.Reserved)
	})

	t.Run("inbound consignment leaves stock alone and pays out", func(t *testing.T) {
		env := newTestEnv(t)
		consignor := env.seedPartner("PTN-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 100000, 0)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		resp, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID:      consignor.ID,
			Direction:      "IN",
			CommissionRate: decimal.NewFromInt(20),
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})

		require.NoError(t, err)
		amountEquals(t, 500000, resp.TotalAmount)
		amountEquals(t, 400000, resp.FinalAmount)

		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "OUT", resp.Transactions[0].Direction)
		amountEquals(t, 400000, resp.Transactions[0].TotalAmount)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 0, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})

	t.Run("rejects unknown directions", func(t *testing.T) {
		env := newTestEnv(t)
		consignee := env.seedPartner("PTN-001", partner.PartnerTypeCustomer)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID: consignee.ID,
			Direction: "SIDEWAYS",
		})

		requireDomainCode(t, err, "INVALID_INPUT")
	})

	t.Run("rejects non-product lines", func(t *testing.T) {
		env := newTestEnv(t)
		consignee := env.seedPartner("PTN-001", partner.PartnerTypeCustomer)
		course := env.seedCourse("CRS-001", 900000, 10)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		_, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID: consignee.ID,
			Direction: "OUT",
			Items: []appdocument.AddItemRequest{
				{ItemableType: "COURSE", ItemableID: course.ID, Quantity: 1},
			},
		})

		requireDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestConsignmentService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("outbound cancel releases the reservation", func(t *testing.T) {
		env := newTestEnv(t)
		consignee := env.seedPartner("PTN-001", partner.PartnerTypeCustomer)
		product := env.seedProduct("PRD-001", 100000, 10)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID: consignee.ID,
			Direction: "OUT",
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 4},
			},
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 10, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})

	t.Run("inbound cancel has no stock to release", func(t *testing.T) {
		env := newTestEnv(t)
		consignor := env.seedPartner("PTN-001", partner.PartnerTypeSupplier)
		product := env.seedProduct("PRD-001", 100000, 2)
		svc := appdocument.NewConsignmentService(env.scope, &seqCodes{})

		created, err := svc.Create(ctx, nil, appdocument.CreateConsignmentRequest{
			PartnerID: consignor.ID,
			Direction: "IN",
			Items: []appdocument.AddItemRequest{
				{ItemableType: "PRODUCT", ItemableID: product.ID, Quantity: 5},
			},
		})
		require.NoError(t, err)

		resp, err := svc.Cancel(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)

		reloaded := env.reloadProduct(product.ID)
		assert.Equal(t, 2, reloaded.Quantity)
		assert.Equal(t, 0, reloaded.Reserved)
	})
}
