package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	// Save inserts a review. A second review for the same booking returns a
	// NotReviewableError.
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByServiceID lists reviews whose booking is for serviceID.
	FindByServiceID(ctx context.Context, serviceID uuid.UUID, page, limit int) ([]*Review, int64, error)
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID, page, limit int) ([]*Review, int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*Review, int64, error)
	// AggregateForService returns mean and count over reviews joined through
	// bookings. The booking's service_id is authoritative.
	AggregateForService(ctx context.Context, serviceID uuid.UUID) (float64, int64, error)
	Distribution(ctx context.Context, serviceID uuid.UUID) (map[int]int64, error)
	// SyncServiceIDs rewrites reviews.service_id from the owning booking and
	// returns the number of rows repaired.
	SyncServiceIDs(ctx context.Context) (int64, error)
}
