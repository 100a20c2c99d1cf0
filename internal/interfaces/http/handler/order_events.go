package handler

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/application/notification"
	"github.com/souqmarket/backend/internal/infrastructure/realtime"
)

// EventSubscriber hands out live subscriptions to realtime topics
type EventSubscriber interface {
	Subscribe(topics ...string) (<-chan realtime.Message, func())
}

// OrderEventsHandler streams order status events to clients over SSE.
// Access follows the same visibility rules as reading the order itself.
type OrderEventsHandler struct {
	BaseHandler
	orders      OrderService
	subscriber  EventSubscriber
	logger      *zap.Logger
	heartbeat   time.Duration
	maxClients  int64
	clientCount atomic.Int64
}

// OrderEventsOption is a functional option for configuring the handler
type OrderEventsOption func(*OrderEventsHandler)

// WithEventsHeartbeat sets the heartbeat interval
func WithEventsHeartbeat(interval time.Duration) OrderEventsOption {
	return func(h *OrderEventsHandler) {
		h.heartbeat = interval
	}
}

// WithEventsMaxClients sets the maximum number of concurrent SSE clients
func WithEventsMaxClients(max int64) OrderEventsOption {
	return func(h *OrderEventsHandler) {
		h.maxClients = max
	}
}

// NewOrderEventsHandler creates a new SSE handler for order status events
func NewOrderEventsHandler(orders OrderService, subscriber EventSubscriber, logger *zap.Logger, opts ...OrderEventsOption) *OrderEventsHandler {
	h := &OrderEventsHandler{
		orders:     orders,
		subscriber: subscriber,
		logger:     logger,
		heartbeat:  30 * time.Second,
		maxClients: 10000,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the SSE route
func (h *OrderEventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:id/events", h.Stream)
}

// Stream establishes a Server-Sent Events connection for one order's
// status updates
func (h *OrderEventsHandler) Stream(c *gin.Context) {
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

	// The visibility check is the same one the read endpoint enforces.
	if _, err := h.orders.GetByID(c.Request.Context(), actor, orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if h.maxClients > 0 && h.clientCount.Load() >= h.maxClients {
		c.JSON(503, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MAX_CONNECTIONS_REACHED",
				"message": "Maximum number of SSE connections reached",
			},
		})
		return
	}

	h.clientCount.Add(1)
	defer h.clientCount.Add(-1)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.subscriber.Subscribe(notification.OrderTopic(orderID.String()))
	defer cancel()

	clientID := uuid.New().String()
	h.logger.Info("SSE client connected",
		zap.String("client_id", clientID),
		zap.String("order_id", orderID.String()))

	h.sendEvent(c.Writer, "connected",
		fmt.Sprintf(`{"client_id":"%s","order_id":"%s","timestamp":%d}`, clientID, orderID, time.Now().Unix()))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected",
				zap.String("client_id", clientID))
			return
		case <-ticker.C:
			h.sendEvent(c.Writer, "heartbeat",
				fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()))
			c.Writer.Flush()
		case msg, ok := <-events:
			if !ok {
				return
			}
			h.sendEvent(c.Writer, "status", string(msg.Payload))
			c.Writer.Flush()
		}
	}
}

// sendEvent writes one SSE event to the response writer
func (h *OrderEventsHandler) sendEvent(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", data)
}

// ClientCount returns the number of connected SSE clients
func (h *OrderEventsHandler) ClientCount() int64 {
	return h.clientCount.Load()
}
