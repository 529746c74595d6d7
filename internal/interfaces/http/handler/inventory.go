package handler

import (
	appinventory "github.com/salonops/backend/internal/application/inventory"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles stock movement API endpoints
type InventoryHandler struct {
	BaseHandler
	movements *appinventory.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movements *appinventory.MovementService) *InventoryHandler {
	return &InventoryHandler{
		movements: movements,
	}
}

// HandleItem moves stock for a single line item. A body with no quantity
// handles everything still outstanding; a partial quantity is allowed for
// product lines only.
func (h *InventoryHandler) HandleItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req appinventory.HandleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.movements.HandleItem(c.Request.Context(), id, getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateAdjustment corrects a product's stock outside any document
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req appinventory.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.movements.CreateAdjustment(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListByProduct returns a product's stock movement history
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "productID")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return
	}
	listReq.Normalize()

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}

	records, err := h.movements.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}
