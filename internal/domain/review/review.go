package review

import (
	"math"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of one completed booking. Reviews are never
// edited; the author may delete one.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	customerID uuid.UUID
	serviceID  uuid.UUID
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview creates a review. serviceID must be the booking's service.
func NewReview(bookingID, customerID, serviceID uuid.UUID, rating int, comment string, now time.Time) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}
	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		customerID: customerID,
		serviceID:  serviceID,
		rating:     rating,
		comment:    strings.TrimSpace(comment),
		createdAt:  now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id, bookingID, customerID, serviceID uuid.UUID, rating int, comment string, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		customerID: customerID,
		serviceID:  serviceID,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID { return r.customerID }
func (r *Review) ServiceID() uuid.UUID  { return r.serviceID }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }

// IsAuthoredBy reports whether customerID wrote the review.
func (r *Review) IsAuthoredBy(customerID uuid.UUID) bool {
	return r.customerID == customerID
}

// Mean returns the arithmetic mean of ratings, or 0 for none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// DisplayRating rounds a stored rating to one decimal place for presentation.
func DisplayRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

// Summary is the per-star breakdown of a service's reviews.
type Summary struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}
