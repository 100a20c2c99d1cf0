package realtime

import (
	"context"

	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/application/notification"
)

// MultiPublisher fans a publish out to several transports, typically
// the in-process Hub plus redis. A failing transport is logged and does
// not stop the others.
type MultiPublisher struct {
	publishers []notification.Publisher
	logger     *zap.Logger
}

// NewMultiPublisher creates a new MultiPublisher
func NewMultiPublisher(logger *zap.Logger, publishers ...notification.Publisher) *MultiPublisher {
	return &MultiPublisher{
		publishers: publishers,
		logger:     logger,
	}
}

// Publish delivers the payload through every transport
func (m *MultiPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, topic, payload); err != nil {
			m.logger.Warn("realtime transport failed",
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
	return nil
}

// NoopPublisher discards everything. Used when realtime delivery is disabled.
type NoopPublisher struct{}

// Publish discards the payload
func (NoopPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	return nil
}

var (
	_ notification.Publisher = (*MultiPublisher)(nil)
	_ notification.Publisher = NoopPublisher{}
)
