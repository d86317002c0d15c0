package application

import (
	"context"

	"go.uber.org/zap"
)

// EventPublisher emits a domain event. Services call it only after the
// transaction that produced the event has committed.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, subject string, data interface{}) error
}

// NoopPublisher discards every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

// Publish implements EventPublisher.
func (NoopPublisher) Publish(context.Context, string, string, string, interface{}) error {
	return nil
}

type outboundEvent struct {
	topic     string
	eventType string
	subject   string
	data      interface{}
}

// publishAll sends events best-effort. A failure is logged and never changes
// the already committed result.
func publishAll(ctx context.Context, publisher EventPublisher, logger *zap.Logger, evts []outboundEvent) {
	for _, evt := range evts {
		if err := publisher.Publish(ctx, evt.topic, evt.eventType, evt.subject, evt.data); err != nil {
			logger.Error("failed to publish event",
				zap.String("topic", evt.topic),
				zap.String("event_type", evt.eventType),
				zap.String("subject", evt.subject),
				zap.Error(err),
			)
		}
	}
}
