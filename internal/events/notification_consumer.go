package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/JasaIn/service-booking/internal/common/kafka"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/domain/notification"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier stores a notification.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}

// NotificationProjector turns booking, payment and review events into
// notifications for the party that needs to act or know.
type NotificationProjector struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewNotificationProjector creates a new NotificationProjector.
func NewNotificationProjector(notifier Notifier, logger *zap.Logger) *NotificationProjector {
	return &NotificationProjector{notifier: notifier, logger: logger}
}

// HandleMessage projects one Kafka message. Malformed messages are logged and
// skipped; a storage failure is returned so the offset stays uncommitted.
func (p *NotificationProjector) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		p.logger.Error("failed to parse cloud event",
			zap.String("topic", msg.Topic),
			zap.Error(err),
		)
		return nil
	}

	notes, err := p.project(ce)
	if err != nil {
		p.logger.Error("failed to parse event data",
			zap.String("type", ce.Type),
			zap.String("id", ce.ID),
			zap.Error(err),
		)
		return nil
	}
	if len(notes) == 0 {
		p.logger.Debug("ignoring unhandled event type", zap.String("type", ce.Type))
		return nil
	}

	for _, n := range notes {
		if err := p.notifier.Notify(ctx, n); err != nil {
			return fmt.Errorf("failed to store notification for %s: %w", ce.Type, err)
		}
	}
	return nil
}

func (p *NotificationProjector) project(ce kafka.CloudEvent) ([]*notification.Notification, error) {
	switch ce.Type {
	case events.BookingCreated, events.BookingConfirmed, events.BookingRejected,
		events.BookingCompleted, events.BookingCancelled:
		var evt events.BookingEvent
		if err := ce.ParseData(&evt); err != nil {
			return nil, err
		}
		return bookingNotifications(ce, evt), nil

	case events.PaymentRecorded, events.PaymentStatusChanged:
		var evt events.PaymentEvent
		if err := ce.ParseData(&evt); err != nil {
			return nil, err
		}
		return paymentNotifications(ce, evt), nil

	case events.ReviewCreated:
		var evt events.ReviewEvent
		if err := ce.ParseData(&evt); err != nil {
			return nil, err
		}
		return []*notification.Notification{
			notification.New(evt.UMKMID, notification.TypeReviewReceived, map[string]string{
				notification.KeyRating: strconv.Itoa(evt.Rating),
			}, evt.ServiceID, ce.ID),
		}, nil
	}
	return nil, nil
}

func bookingNotifications(ce kafka.CloudEvent, evt events.BookingEvent) []*notification.Notification {
	data := map[string]string{
		notification.KeyServiceName: evt.ServiceName,
		notification.KeyBookingDate: evt.BookingDate.UTC().Format(time.RFC3339),
	}
	if evt.Reason != "" {
		data[notification.KeyReason] = evt.Reason
	}

	switch ce.Type {
	case events.BookingCreated:
		return []*notification.Notification{
			notification.New(evt.UMKMID, notification.TypeBookingCreated, data, evt.BookingID, ce.ID),
		}
	case events.BookingConfirmed:
		return []*notification.Notification{
			notification.New(evt.CustomerID, notification.TypeBookingConfirmed, data, evt.BookingID, ce.ID),
		}
	case events.BookingRejected:
		return []*notification.Notification{
			notification.New(evt.CustomerID, notification.TypeBookingRejected, data, evt.BookingID, ce.ID),
		}
	case events.BookingCompleted:
		return []*notification.Notification{
			notification.New(evt.CustomerID, notification.TypeBookingCompleted, data, evt.BookingID, ce.ID),
		}
	case events.BookingCancelled:
		return []*notification.Notification{
			notification.New(evt.CustomerID, notification.TypeBookingCancelled, data, evt.BookingID, ce.ID),
			notification.New(evt.UMKMID, notification.TypeBookingCancelled, data, evt.BookingID, ce.ID),
		}
	}
	return nil
}

func paymentNotifications(ce kafka.CloudEvent, evt events.PaymentEvent) []*notification.Notification {
	data := map[string]string{
		notification.KeyAmount: evt.Amount.String(),
		notification.KeyMethod: evt.Method,
	}
	if ce.Type == events.PaymentRecorded {
		return []*notification.Notification{
			notification.New(evt.UMKMID, notification.TypePaymentReceived, data, evt.BookingID, ce.ID),
		}
	}

	var typ notification.Type
	switch evt.Status {
	case "completed":
		typ = notification.TypePaymentVerified
	case "failed":
		typ = notification.TypePaymentFailed
	case "refunded":
		typ = notification.TypePaymentRefunded
	default:
		return nil
	}
	return []*notification.Notification{
		notification.New(evt.CustomerID, typ, data, evt.BookingID, ce.ID),
	}
}

// NotificationConsumer runs one group consumer per event topic, all feeding
// the same projector.
type NotificationConsumer struct {
	consumers []*kafka.Consumer
	projector *NotificationProjector
	logger    *zap.Logger
}

// NewNotificationConsumer creates consumers for the booking, payment and review topics.
func NewNotificationConsumer(brokers []string, groupID string, notifier Notifier, logger *zap.Logger) *NotificationConsumer {
	topics := []string{events.TopicBookingEvents, events.TopicPaymentEvents, events.TopicReviewEvents}
	consumers := make([]*kafka.Consumer, len(topics))
	for i, topic := range topics {
		consumers[i] = kafka.NewConsumer(brokers, groupID, topic, logger)
	}
	return &NotificationConsumer{
		consumers: consumers,
		projector: NewNotificationProjector(notifier, logger),
		logger:    logger,
	}
}

// Start blocks until ctx is cancelled or a consumer fails.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, consumer := range c.consumers {
		wg.Add(1)
		go func(consumer *kafka.Consumer) {
			defer wg.Done()
			err := consumer.Consume(ctx, c.projector.HandleMessage)
			if err != nil && !errors.Is(err, context.Canceled) {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(consumer)
	}
	wg.Wait()
	return firstErr
}

// Close closes every underlying consumer.
func (c *NotificationConsumer) Close() error {
	var errs []error
	for _, consumer := range c.consumers {
		if err := consumer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
