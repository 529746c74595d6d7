package handler

import (
	appdocument "github.com/salonops/backend/internal/application/document"
	appinventory "github.com/salonops/backend/internal/application/inventory"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles sales order API endpoints
type OrderHandler struct {
	BaseHandler
	orders    *appdocument.OrderService
	movements *appinventory.MovementService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appdocument.OrderService, movements *appinventory.MovementService) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		movements: movements,
	}
}

// Create creates a sales order with its initial items
func (h *OrderHandler) Create(c *gin.Context) {
	var req appdocument.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one order with its items and ledger entries
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns orders matching the filter
func (h *OrderHandler) List(c *gin.Context) {
	var filter appdocument.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	responses, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// AddItem attaches an itemable to the order, merging into an existing
// compatible line when possible
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req appdocument.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orders.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem detaches an untouched line item from the order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	resp, err := h.orders.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Handle moves stock for every outstanding item on the order
func (h *OrderHandler) Handle(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	source := document.SourceRef{Type: document.SourceTypeOrder, ID: id}
	results, err := h.movements.HandleSource(c.Request.Context(), source, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Cancel cancels the order, releasing unexported reservations and opening a
// compensating ledger entry for any money already collected
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
