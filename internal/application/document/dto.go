package document

import (
	"time"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest attaches one itemable unit to a document
type AddItemRequest struct {
	ItemableType string     `json:"itemable_type" binding:"required"`
	ItemableID   uuid.UUID  `json:"itemable_id" binding:"required"`
	Quantity     int        `json:"quantity" binding:"required,gt=0"`
	DiscountID   *uuid.UUID `json:"discount_id"`
}

// CreateOrderRequest creates a sales order with its initial items
type CreateOrderRequest struct {
	CustomerID uuid.UUID        `json:"customer_id" binding:"required"`
	DiscountID *uuid.UUID       `json:"discount_id"`
	Note       string           `json:"note"`
	Items      []AddItemRequest `json:"items" binding:"dive"`
}

// CreatePurchaseRequest creates a procurement document
type CreatePurchaseRequest struct {
	SupplierID     uuid.UUID        `json:"supplier_id" binding:"required"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	Note           string           `json:"note"`
	Items          []AddItemRequest `json:"items" binding:"dive"`
}

// CreateConsignmentRequest creates a partner stock-holding document
type CreateConsignmentRequest struct {
	PartnerID      uuid.UUID        `json:"partner_id" binding:"required"`
	Direction      string           `json:"direction" binding:"required"`
	CommissionRate decimal.Decimal  `json:"commission_rate"`
	Note           string           `json:"note"`
	Items          []AddItemRequest `json:"items" binding:"dive"`
}

// ApplyPaymentRequest records money collected or paid out against a ledger entry
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListFilter narrows document listings
type ListFilter struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	PartnerID string `form:"partner_id"`
}

// ItemResponse is the API view of a line item
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemableType string          `json:"itemable_type"`
	ItemableID   uuid.UUID       `json:"itemable_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
	DiscountID   *uuid.UUID      `json:"discount_id,omitempty"`
	Status       string          `json:"status"`
	Adjustment   string          `json:"adjustment"`
	IsActive     bool            `json:"is_active"`
}

// TransactionResponse is the API view of a money ledger entry
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	SourceType  string          `json:"source_type"`
	SourceID    uuid.UUID       `json:"source_id"`
	Direction   string          `json:"direction"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderResponse is the API view of an order with its items and ledger
type OrderResponse struct {
	ID           uuid.UUID             `json:"id"`
	Code         string                `json:"code"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	Quantity     int                   `json:"quantity"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	FinalAmount  decimal.Decimal       `json:"final_amount"`
	DiscountID   *uuid.UUID            `json:"discount_id,omitempty"`
	Status       string                `json:"status"`
	Note         string                `json:"note,omitempty"`
	Items        []ItemResponse        `json:"items,omitempty"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// PurchaseResponse is the API view of a purchase with its items and ledger
type PurchaseResponse struct {
	ID             uuid.UUID             `json:"id"`
	Code           string                `json:"code"`
	SupplierID     uuid.UUID             `json:"supplier_id"`
	Quantity       int                   `json:"quantity"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	FinalAmount    decimal.Decimal       `json:"final_amount"`
	Status         string                `json:"status"`
	Note           string                `json:"note,omitempty"`
	Items          []ItemResponse        `json:"items,omitempty"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ConsignmentResponse is the API view of a consignment with its items and ledger
type ConsignmentResponse struct {
	ID             uuid.UUID             `json:"id"`
	Code           string                `json:"code"`
	PartnerID      uuid.UUID             `json:"partner_id"`
	Direction      string                `json:"direction"`
	CommissionRate decimal.Decimal       `json:"commission_rate"`
	Quantity       int                   `json:"quantity"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	FinalAmount    decimal.Decimal       `json:"final_amount"`
	Status         string                `json:"status"`
	Note           string                `json:"note,omitempty"`
	Items          []ItemResponse        `json:"items,omitempty"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToItemResponse converts a line item to its API view
func ToItemResponse(item *document.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		ItemableType: string(item.ItemableType),
		ItemableID:   item.ItemableID,
		Code:         item.Snapshot.Code,
		Name:         item.Snapshot.Name,
		Quantity:     item.Quantity,
		UnitPrice:    item.Snapshot.UnitPrice,
		TotalAmount:  item.TotalAmount,
		FinalAmount:  item.FinalAmount,
		DiscountID:   item.DiscountID,
		Status:       string(item.Status),
		Adjustment:   string(item.Adjustment),
		IsActive:     item.IsActive,
	}
}

// ToItemResponses converts a slice of line items
func ToItemResponses(items []document.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToItemResponse(&items[idx]))
	}
	return responses
}

// ToTransactionResponse converts a ledger entry to its API view
func ToTransactionResponse(txn *document.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		SourceType:  string(txn.SourceType),
		SourceID:    txn.SourceID,
		Direction:   string(txn.Direction),
		TotalAmount: txn.TotalAmount,
		PaidAmount:  txn.PaidAmount,
		Status:      string(txn.Status),
		CreatedAt:   txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of ledger entries
func ToTransactionResponses(txns []document.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for idx := range txns {
		responses = append(responses, ToTransactionResponse(&txns[idx]))
	}
	return responses
}

// ToOrderResponse converts an order with its items and ledger entries
func ToOrderResponse(order *document.Order, items []document.Item, txns []document.Transaction) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		Code:         order.Code,
		CustomerID:   order.CustomerID,
		Quantity:     order.Quantity,
		TotalAmount:  order.TotalAmount,
		FinalAmount:  order.FinalAmount,
		DiscountID:   order.DiscountID,
		Status:       string(order.Status),
		Note:         order.Note,
		Items:        ToItemResponses(items),
		Transactions: ToTransactionResponses(txns),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// ToPurchaseResponse converts a purchase with its items and ledger entries
func ToPurchaseResponse(purchase *document.Purchase, items []document.Item, txns []document.Transaction) PurchaseResponse {
	return PurchaseResponse{
		ID:             purchase.ID,
		Code:           purchase.Code,
		SupplierID:     purchase.SupplierID,
		Quantity:       purchase.Quantity,
		TotalAmount:    purchase.TotalAmount,
		DiscountAmount: purchase.DiscountAmount,
		FinalAmount:    purchase.FinalAmount,
		Status:         string(purchase.Status),
		Note:           purchase.Note,
		Items:          ToItemResponses(items),
		Transactions:   ToTransactionResponses(txns),
		CreatedAt:      purchase.CreatedAt,
		UpdatedAt:      purchase.UpdatedAt,
	}
}

// ToConsignmentResponse converts a consignment with its items and ledger entries
func ToConsignmentResponse(consignment *document.Consignment, items []document.Item, txns []document.Transaction) ConsignmentResponse {
	return ConsignmentResponse{
		ID:             consignment.ID,
		Code:           consignment.Code,
		PartnerID:      consignment.PartnerID,
		Direction:      string(consignment.Direction),
		CommissionRate: consignment.CommissionRate,
		Quantity:       consignment.Quantity,
		TotalAmount:    consignment.TotalAmount,
		FinalAmount:    consignment.FinalAmount,
		Status:         string(consignment.Status),
		Note:           consignment.Note,
		Items:          ToItemResponses(items),
		Transactions:   ToTransactionResponses(txns),
		CreatedAt:      consignment.CreatedAt,
		UpdatedAt:      consignment.UpdatedAt,
	}
}
