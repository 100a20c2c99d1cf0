package realtime

import (
	"context"
	"sync"

	"github.com/souqmarket/backend/internal/application/notification"
)

const subscriberBuffer = 16

// Message is one payload delivered to a subscriber
type Message struct {
	Topic   string
	Payload []byte
}

// Hub is an in-process publisher that feeds connected SSE streams.
// Delivery is best effort: a subscriber that cannot keep up has
// messages dropped rather than blocking the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Message]struct{} // topic -> subscriber channels
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Message]struct{}),
	}
}

// Publish delivers the payload to every subscriber of the topic
func (h *Hub) Publish(ctx context.Context, topic string, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[topic] {
		select {
		case ch <- Message{Topic: topic, Payload: payload}:
		default:
			// Subscriber buffer full, drop the message
		}
	}
	return nil
}

// Subscribe registers a new subscriber for the given topics. The
// returned channel receives messages until cancel is called.
func (h *Hub) Subscribe(topics ...string) (<-chan Message, func()) {
	ch := make(chan Message, subscriberBuffer)

	h.mu.Lock()
	for _, topic := range topics {
		if h.subscribers[topic] == nil {
			h.subscribers[topic] = make(map[chan Message]struct{})
		}
		h.subscribers[topic][ch] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			for _, topic := range topics {
				delete(h.subscribers[topic], ch)
				if len(h.subscribers[topic]) == 0 {
					delete(h.subscribers, topic)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// SubscriberCount returns the number of subscribers on a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

var _ notification.Publisher = (*Hub)(nil)
