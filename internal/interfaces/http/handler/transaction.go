package handler

import (
	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles money ledger API endpoints
type TransactionHandler struct {
	BaseHandler
	payments *appdocument.PaymentService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(payments *appdocument.PaymentService) *TransactionHandler {
	return &TransactionHandler{
		payments: payments,
	}
}

// Get returns one ledger entry
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	resp, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ApplyPayment records money collected or paid out against a ledger entry
// and refreshes the owning document's status
func (h *TransactionHandler) ApplyPayment(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req appdocument.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.payments.ApplyPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
