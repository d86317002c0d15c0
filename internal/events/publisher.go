// Package events connects the booking service to Kafka: it publishes domain
// events after commit and projects them into in-app notifications.
package events

import (
	"context"

	"github.com/JasaIn/service-booking/internal/common/kafka"
	"github.com/JasaIn/service-booking/internal/domain/events"
)

// KafkaPublisher wraps domain payloads in CloudEvents and writes them to Kafka.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher creates a new KafkaPublisher.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish sends data as a CloudEvent of eventType keyed by subject.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, eventType, subject string, data interface{}) error {
	ce, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		return err
	}
	ce.Subject = subject
	return p.producer.PublishEvent(ctx, topic, ce)
}
