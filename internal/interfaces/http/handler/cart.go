package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/souqmarket/backend/internal/application/cart"
)

// CartService manages the customer's cart lines
type CartService interface {
	Get(ctx context.Context, customerID uuid.UUID) (*cartapp.Response, error)
	UpsertItem(ctx context.Context, customerID uuid.UUID, input cartapp.UpsertItemInput) error
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

// CartHandler handles cart endpoints
type CartHandler struct {
	BaseHandler
	service CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.PUT("/items", h.UpsertItem)
		cart.DELETE("/items/:productID", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

// Get returns the caller's cart priced against the current catalog
func (h *CartHandler) Get(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpsertItem adds a product to the cart or replaces an existing line's quantity
func (h *CartHandler) UpsertItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input cartapp.UpsertItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.UpsertItem(c.Request.Context(), customerID, input); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveItem deletes one line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), customerID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Clear(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
