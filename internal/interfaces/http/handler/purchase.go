package handler

import (
	appdocument "github.com/salonops/backend/internal/application/document"
	appinventory "github.com/salonops/backend/internal/application/inventory"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles procurement document API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *appdocument.PurchaseService
	movements *appinventory.MovementService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases *appdocument.PurchaseService, movements *appinventory.MovementService) *PurchaseHandler {
	return &PurchaseHandler{
		purchases: purchases,
		movements: movements,
	}
}

// Create creates a purchase with its initial items
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req appdocument.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.purchases.Create(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one purchase with its items and ledger entries
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	resp, err := h.purchases.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns purchases matching the filter
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter appdocument.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	responses, total, err := h.purchases.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// AddItem attaches a product line to the purchase
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req appdocument.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.purchases.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem detaches an untouched line item from the purchase
func (h *PurchaseHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	resp, err := h.purchases.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Handle imports stock for every outstanding item on the purchase
func (h *PurchaseHandler) Handle(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	source := document.SourceRef{Type: document.SourceTypePurchase, ID: id}
	results, err := h.movements.HandleSource(c.Request.Context(), source, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Cancel cancels the purchase. Already imported stock stays on hand.
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	resp, err := h.purchases.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
