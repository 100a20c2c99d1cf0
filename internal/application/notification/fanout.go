package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// Publisher is the realtime transport behind the fan-out. Publishing is
// fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Topic names. Every event goes to the order's own topic and to the
// catch-all topic.
const TopicAllOrders = "orders.all"

// OrderTopic returns the per-order topic name
func OrderTopic(orderID string) string {
	return "orders." + orderID
}

// StatusFanout pushes order and payment state changes to live
// subscribers. Delivery is best effort and at most once per connected
// subscriber; a publish failure is logged and swallowed, it never fails
// the pipeline that raised the event.
type StatusFanout struct {
	publisher Publisher
	logger    *zap.Logger
}

// NewStatusFanout creates a new StatusFanout handler
func NewStatusFanout(publisher Publisher, logger *zap.Logger) *StatusFanout {
	return &StatusFanout{
		publisher: publisher,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (f *StatusFanout) EventTypes() []string {
	return []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypePaymentStatusChanged,
	}
}

// Handle publishes the event to the per-order and catch-all topics
func (f *StatusFanout) Handle(ctx context.Context, event shared.DomainEvent) error {
	orderID := f.orderID(event)
	payload, err := json.Marshal(event)
	if err != nil {
		f.logger.Warn("failed to encode event for fan-out",
			zap.String("event_type", event.EventType()), zap.Error(err))
		return nil
	}

	for _, topic := range []string{OrderTopic(orderID), TopicAllOrders} {
		if err := f.publisher.Publish(ctx, topic, payload); err != nil {
			f.logger.Warn("fan-out publish failed",
				zap.String("topic", topic),
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}

	return nil
}

// orderID resolves the order the event concerns. Payment events carry
// their order id alongside the payment aggregate id.
func (f *StatusFanout) orderID(event shared.DomainEvent) string {
	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		return e.OrderID.String()
	case *order.OrderStatusChangedEvent:
		return e.OrderID.String()
	case *order.PaymentStatusChangedEvent:
		return e.OrderID.String()
	default:
		return event.AggregateID().String()
	}
}
