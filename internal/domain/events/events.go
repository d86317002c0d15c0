// Package events defines the topics, CloudEvent types and payloads the booking
// service publishes after a transaction commits.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source is the CloudEvent source of every event emitted here.
const Source = "jasain-service-booking"

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
	TopicReviewEvents  = "review.events"
)

// Event types.
const (
	BookingCreated   = "jasain.booking.created"
	BookingConfirmed = "jasain.booking.confirmed"
	BookingRejected  = "jasain.booking.rejected"
	BookingCompleted = "jasain.booking.completed"
	BookingCancelled = "jasain.booking.cancelled"

	PaymentRecorded      = "jasain.payment.recorded"
	PaymentStatusChanged = "jasain.payment.status_changed"

	ReviewCreated = "jasain.review.created"
	ReviewDeleted = "jasain.review.deleted"
)

// BookingEvent is the payload of every booking.* event.
type BookingEvent struct {
	BookingID      uuid.UUID       `json:"booking_id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	UMKMID         uuid.UUID       `json:"umkm_id"`
	ServiceID      uuid.UUID       `json:"service_id"`
	ServiceName    string          `json:"service_name"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	BookingDate    time.Time       `json:"booking_date"`
	Reason         string          `json:"reason,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// PaymentEvent is the payload of every payment.* event.
type PaymentEvent struct {
	PaymentID  uuid.UUID       `json:"payment_id"`
	BookingID  uuid.UUID       `json:"booking_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	UMKMID     uuid.UUID       `json:"umkm_id"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ReviewEvent is the payload of every review.* event.
type ReviewEvent struct {
	ReviewID      uuid.UUID `json:"review_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	UMKMID        uuid.UUID `json:"umkm_id"`
	Rating        int       `json:"rating"`
	ServiceRating float64   `json:"service_rating"`
	ReviewCount   int64     `json:"review_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}
