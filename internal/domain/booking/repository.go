package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIdempotencyKey returns the booking a customer created with key.
	FindByIdempotencyKey(ctx context.Context, customerID uuid.UUID, key string) (*Booking, error)

	// FindByCustomerID lists a customer's bookings, newest first. An empty
	// status means all statuses.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, status BookingStatus, page, limit int) ([]*Booking, int64, error)

	// FindByUMKMID lists bookings of every service owned by umkmID.
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID, status BookingStatus, page, limit int) ([]*Booking, int64, error)

	// ExistsForService reports whether any booking references serviceID.
	ExistsForService(ctx context.Context, serviceID uuid.UUID) (bool, error)

	// Save persists a new booking. A duplicate (customer, idempotency key)
	// returns a ConflictError.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
