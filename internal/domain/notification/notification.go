package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type identifies what happened. Clients render titles from it.
type Type string

const (
	TypeBookingCreated   Type = "booking_created"
	TypeBookingConfirmed Type = "booking_confirmed"
	TypeBookingRejected  Type = "booking_rejected"
	TypeBookingCompleted Type = "booking_completed"
	TypeBookingCancelled Type = "booking_cancelled"
	TypePaymentReceived  Type = "payment_received"
	TypePaymentVerified  Type = "payment_verified"
	TypePaymentFailed    Type = "payment_failed"
	TypePaymentRefunded  Type = "payment_refunded"
	TypeReviewReceived   Type = "review_received"
)

// Data keys carried by notifications. Values are raw event fields; clients
// format them.
const (
	KeyServiceName = "service_name"
	KeyBookingDate = "booking_date"
	KeyReason      = "reason"
	KeyAmount      = "amount"
	KeyMethod      = "method"
	KeyRating      = "rating"
)

// Notification is an in-app notice for one user. The core stores the type
// key and structured data only; clients render the text.
type Notification struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Type        Type              `json:"type"`
	Data        map[string]string `json:"data,omitempty"`
	ReferenceID uuid.UUID         `json:"reference_id"`
	// SourceEventID deduplicates redelivered events.
	SourceEventID string    `json:"-"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// New creates an unread notification.
func New(userID uuid.UUID, typ Type, data map[string]string, referenceID uuid.UUID, sourceEventID string) *Notification {
	return &Notification{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          typ,
		Data:          data,
		ReferenceID:   referenceID,
		SourceEventID: sourceEventID,
		CreatedAt:     time.Now().UTC(),
	}
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	// Save inserts n, ignoring a repeat of the same (user, source event).
	Save(ctx context.Context, n *Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}
