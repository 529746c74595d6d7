package inventory

import (
	"time"

	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// HandleItemRequest moves stock for one line item. A nil quantity handles
// everything still outstanding.
type HandleItemRequest struct {
	Quantity *int `json:"quantity" binding:"omitempty,gt=0"`
}

// CreateAdjustmentRequest corrects a product's stock outside any document
type CreateAdjustmentRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Action    string    `json:"action" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	Note      string    `json:"note"`
}

// RecordResponse is the API view of one stock ledger row
type RecordResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Action    string     `json:"action"`
	Quantity  int        `json:"quantity"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// HandleItemResponse reports the movement outcome for one item
type HandleItemResponse struct {
	ItemID          uuid.UUID       `json:"item_id"`
	ItemStatus      string          `json:"item_status"`
	HandledQuantity int             `json:"handled_quantity"`
	TotalQuantity   int             `json:"total_quantity"`
	Record          *RecordResponse `json:"record,omitempty"`
}

// ToRecordResponse converts a ledger row to its API view
func ToRecordResponse(record *inventory.InventoryRecord) RecordResponse {
	return RecordResponse{
		ID:        record.ID,
		ProductID: record.ProductID,
		ItemID:    record.ItemID,
		Action:    string(record.Action),
		Quantity:  record.Quantity,
		Note:      record.Note,
		CreatedAt: record.CreatedAt,
	}
}
