package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewRequest holds the data needed to review a completed booking.
type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// ReviewDTO is the API response representation of a review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewResultDTO carries the review and the service rating it produced.
type ReviewResultDTO struct {
	Review        ReviewDTO `json:"review"`
	ServiceRating float64   `json:"service_rating"`
	ReviewCount   int64     `json:"review_count"`
}

// RatingSummaryDTO is a service's rating with its per-star breakdown.
type RatingSummaryDTO struct {
	ServiceID     uuid.UUID     `json:"service_id"`
	Average       float64       `json:"average"`
	DisplayRating float64       `json:"display_rating"`
	Count         int64         `json:"count"`
	Distribution  map[int]int64 `json:"distribution"`
}

// ReviewService handles review use cases. Every insert and delete recomputes
// the service rating inside the same transaction.
type ReviewService struct {
	store      Store
	aggregator *RatingAggregator
	publisher  EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store Store, aggregator *RatingAggregator, publisher EventPublisher, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		store:      store,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// CreateReview reviews a completed booking once.
func (s *ReviewService) CreateReview(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*ReviewResultDTO, error) {
	var (
		rv     *review.Review
		umkmID uuid.UUID
		rating float64
		count  int64
	)
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		bk, err := repos.Bookings().FindByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if bk.CustomerID() != customerID {
			return domain.NewForbiddenError("only the booking's customer can review it")
		}
		if err := bk.EnsureReviewable(); err != nil {
			return err
		}
		exists, err := repos.Reviews().ExistsForBooking(ctx, bk.ID())
		if err != nil {
			return err
		}
		if exists {
			return domain.NewNotReviewableError("booking already has a review")
		}

		svc, err := repos.Services().FindByID(ctx, bk.ServiceID())
		if err != nil {
			return err
		}
		umkmID = svc.UMKMID()

		rv, err = review.NewReview(bk.ID(), customerID, bk.ServiceID(), req.Rating, req.Comment, s.now())
		if err != nil {
			return err
		}
		if err := repos.Reviews().Save(ctx, rv); err != nil {
			return err
		}
		rating, count, err = s.aggregator.Recompute(ctx, repos, bk.ServiceID())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", rv.ID().String()),
		zap.String("booking_id", rv.BookingID().String()),
		zap.Int("rating", rv.Rating()),
		zap.Float64("service_rating", rating),
	)
	publishAll(ctx, s.publisher, s.logger, []outboundEvent{
		reviewEvent(events.ReviewCreated, rv, umkmID, rating, count, s.now()),
	})

	return &ReviewResultDTO{Review: toReviewDTO(rv), ServiceRating: rating, ReviewCount: count}, nil
}

// DeleteReview removes the author's own review and recomputes the rating of
// the booking's service.
func (s *ReviewService) DeleteReview(ctx context.Context, customerID, reviewID uuid.UUID) (*ReviewResultDTO, error) {
	var (
		rv     *review.Review
		umkmID uuid.UUID
		rating float64
		count  int64
	)
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		rv, err = repos.Reviews().FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if !rv.IsAuthoredBy(customerID) {
			return domain.NewForbiddenError("only the author can delete this review")
		}
		bk, err := repos.Bookings().FindByID(ctx, rv.BookingID())
		if err != nil {
			return err
		}
		svc, err := repos.Services().FindByID(ctx, bk.ServiceID())
		if err != nil {
			return err
		}
		umkmID = svc.UMKMID()

		if err := repos.Reviews().Delete(ctx, rv.ID()); err != nil {
			return err
		}
		rating, count, err = s.aggregator.Recompute(ctx, repos, bk.ServiceID())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review deleted",
		zap.String("review_id", rv.ID().String()),
		zap.Float64("service_rating", rating),
	)
	publishAll(ctx, s.publisher, s.logger, []outboundEvent{
		reviewEvent(events.ReviewDeleted, rv, umkmID, rating, count, s.now()),
	})

	return &ReviewResultDTO{Review: toReviewDTO(rv), ServiceRating: rating, ReviewCount: count}, nil
}

// GetServiceReviews lists reviews of a service, newest first.
func (s *ReviewService) GetServiceReviews(ctx context.Context, serviceID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	if _, err := s.store.Repositories().Services().FindByID(ctx, serviceID); err != nil {
		return nil, err
	}
	reviews, total, err := s.store.Repositories().Reviews().FindByServiceID(ctx, serviceID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toReviewDTOs(reviews), total, page, limit)
	return &result, nil
}

// GetUMKMReviews lists reviews across every service of an UMKM.
func (s *ReviewService) GetUMKMReviews(ctx context.Context, umkmID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	reviews, total, err := s.store.Repositories().Reviews().FindByUMKMID(ctx, umkmID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toReviewDTOs(reviews), total, page, limit)
	return &result, nil
}

// GetCustomerReviews lists reviews written by a customer.
func (s *ReviewService) GetCustomerReviews(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	reviews, total, err := s.store.Repositories().Reviews().FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toReviewDTOs(reviews), total, page, limit)
	return &result, nil
}

// GetRatingSummary returns the stored rating of a service with its star breakdown.
func (s *ReviewService) GetRatingSummary(ctx context.Context, serviceID uuid.UUID) (*RatingSummaryDTO, error) {
	repos := s.store.Repositories()
	svc, err := repos.Services().FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	dist, err := repos.Reviews().Distribution(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return &RatingSummaryDTO{
		ServiceID:     svc.ID(),
		Average:       svc.Rating(),
		DisplayRating: review.DisplayRating(svc.Rating()),
		Count:         svc.ReviewCount(),
		Distribution:  dist,
	}, nil
}

func reviewEvent(eventType string, rv *review.Review, umkmID uuid.UUID, rating float64, count int64, now time.Time) outboundEvent {
	return outboundEvent{
		topic:     events.TopicReviewEvents,
		eventType: eventType,
		subject:   rv.ID().String(),
		data: events.ReviewEvent{
			ReviewID:      rv.ID(),
			BookingID:     rv.BookingID(),
			ServiceID:     rv.ServiceID(),
			CustomerID:    rv.CustomerID(),
			UMKMID:        umkmID,
			Rating:        rv.Rating(),
			ServiceRating: rating,
			ReviewCount:   count,
			OccurredAt:    now.UTC(),
		},
	}
}

func toReviewDTO(rv *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		CustomerID: rv.CustomerID(),
		ServiceID:  rv.ServiceID(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}

func toReviewDTOs(reviews []*review.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}
	return dtos
}
