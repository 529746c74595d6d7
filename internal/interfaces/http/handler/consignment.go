package handler

import (
	appdocument "github.com/salonops/backend/internal/application/document"
	appinventory "github.com/salonops/backend/internal/application/inventory"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
)

// ConsignmentHandler handles consignment document API endpoints
type ConsignmentHandler struct {
	BaseHandler
	consignments *appdocument.ConsignmentService
	movements    *appinventory.MovementService
}

// NewConsignmentHandler creates a new ConsignmentHandler
func NewConsignmentHandler(consignments *appdocument.ConsignmentService, movements *appinventory.MovementService) *ConsignmentHandler {
	return &ConsignmentHandler{
		consignments: consignments,
		movements:    movements,
	}
}

// Create creates a consignment with its initial items
func (h *ConsignmentHandler) Create(c *gin.Context) {
	var req appdocument.CreateConsignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.consignments.Create(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one consignment with its items and ledger entries
func (h *ConsignmentHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignment ID format")
		return
	}

	resp, err := h.consignments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns consignments matching the filter
func (h *ConsignmentHandler) List(c *gin.Context) {
	var filter appdocument.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	responses, total, err := h.consignments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// AddItem attaches a product line to the consignment
func (h *ConsignmentHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignment ID format")
		return
	}

	var req appdocument.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.consignments.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem detaches an untouched line item from the consignment
func (h *ConsignmentHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignment ID format")
		return
	}
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	resp, err := h.consignments.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Handle moves stock for every outstanding item on the consignment.
// Direction follows the document: OUT exports, IN imports.
func (h *ConsignmentHandler) Handle(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignment ID format")
		return
	}

	source := document.SourceRef{Type: document.SourceTypeConsignment, ID: id}
	results, err := h.movements.HandleSource(c.Request.Context(), source, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Cancel cancels the consignment, releasing unexported reservations
func (h *ConsignmentHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignment ID format")
		return
	}

	resp, err := h.consignments.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
