package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Payment, error)
	Save(ctx context.Context, payment *Payment) error
	// Update persists a status change with optimistic locking.
	Update(ctx context.Context, payment *Payment) error
}
