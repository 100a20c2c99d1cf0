package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
	orderapp "github.com/souqmarket/backend/internal/application/order"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/interfaces/http/dto"
)

// OrderService exposes order reads and status transitions
type OrderService interface {
	GetByID(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID) (*order.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error)
	Transition(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	service OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/status", h.Transition)
	}
}

// List returns the caller's orders with pagination
func (h *OrderHandler) List(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}

	result, err := h.service.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]checkoutapp.OrderResponse, len(result.Items))
	for i, ord := range result.Items {
		items[i] = checkoutapp.ToOrderResponse(ord)
	}

	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Get returns one order, subject to the caller's visibility
func (h *OrderHandler) Get(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	ord, err := h.service.GetByID(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, checkoutapp.ToOrderResponse(ord))
}

// Transition moves an order to the target status
func (h *OrderHandler) Transition(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var input orderapp.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	target := order.Status(strings.ToUpper(input.Status))
	if !target.IsValid() {
		h.BadRequest(c, "Unknown order status: "+input.Status)
		return
	}

	ord, err := h.service.Transition(c.Request.Context(), actor, orderID, target)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, checkoutapp.ToOrderResponse(ord))
}
