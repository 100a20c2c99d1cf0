package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
)

// CheckoutService runs the checkout pipeline for one customer
type CheckoutService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, input checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error)
}

// CheckoutHandler handles the checkout endpoint
type CheckoutHandler struct {
	BaseHandler
	service CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
}

// Checkout converts the caller's cart into one order per market.
// A top-level error means nothing was persisted; per-order payment
// outcomes inside a 201 are independent.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input checkoutapp.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.Checkout(c.Request.Context(), customerID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}
