package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	paymentapp "github.com/souqmarket/backend/internal/application/payment"
)

// PaymentReconciler applies externally reported payment results
type PaymentReconciler interface {
	Process(ctx context.Context, input paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error)
}

// PaymentHandler handles the payment reconciliation endpoint
type PaymentHandler struct {
	BaseHandler
	reconciler PaymentReconciler
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(reconciler PaymentReconciler) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/process", h.Process)
}

// Process reconciles one order's payment result. On success the order
// advances to PROCESSING.
func (h *PaymentHandler) Process(c *gin.Context) {
	var input paymentapp.ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.reconciler.Process(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
