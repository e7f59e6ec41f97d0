package events

import (
	"context"

	"github.com/customeros/bookgraph/internal/enum"
	"github.com/customeros/bookgraph/internal/logger"
)

// NoopPublisher is used when no broker is configured. Events are logged at
// debug level and dropped.
type NoopPublisher struct {
	logger logger.Logger
}

func NewNoopPublisher(logger logger.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	p.logger.Debugf("events disabled, dropping %s event for %s", entityType, entityId)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
