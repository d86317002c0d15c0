package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// completedBooking books serviceID for a fresh customer and completes it.
func (f *fixture) completedBooking(serviceID uuid.UUID) (customerID, bookingID uuid.UUID) {
	f.t.Helper()
	customerID = f.user(auth.RoleCustomer)
	bk := f.booking(customerID, serviceID)
	f.forceStatus(bk.ID, bookingDomain.StatusCompleted)
	return customerID, bk.ID
}

func (f *fixture) review(customerID, bookingID uuid.UUID, rating int) *application.ReviewResultDTO {
	f.t.Helper()
	res, err := f.reviews.CreateReview(f.ctx, customerID, application.CreateReviewRequest{BookingID: bookingID, Rating: rating})
	require.NoError(f.t, err)
	return res
}

func TestServiceRatingFollowsReviews(t *testing.T) {
	f := newFixture(t)
	umkmID, _, serviceID := f.parties(50000)

	c1, b1 := f.completedBooking(serviceID)
	c2, b2 := f.completedBooking(serviceID)
	c3, b3 := f.completedBooking(serviceID)

	res := f.review(c1, b1, 5)
	assert.Equal(t, 5.0, res.ServiceRating)
	assert.Equal(t, int64(1), res.ReviewCount)

	f.review(c2, b2, 4)
	third := f.review(c3, b3, 2)
	assert.InDelta(t, 11.0/3.0, third.ServiceRating, 1e-9)
	assert.Equal(t, int64(3), third.ReviewCount)

	row := f.serviceRow(serviceID)
	assert.InDelta(t, 11.0/3.0, row.Rating, 1e-9)
	assert.Equal(t, int64(3), row.ReviewCount)

	summary, err := f.reviews.GetRatingSummary(f.ctx, serviceID)
	require.NoError(t, err)
	assert.Equal(t, 3.7, summary.DisplayRating)
	assert.Equal(t, int64(1), summary.Distribution[5])
	assert.Equal(t, int64(0), summary.Distribution[3])

	_, err = f.reviews.DeleteReview(f.ctx, c3, third.Review.ID)
	require.NoError(t, err)
	row = f.serviceRow(serviceID)
	assert.InDelta(t, 4.5, row.Rating, 1e-9)
	assert.Equal(t, int64(2), row.ReviewCount)

	umkmReviews, err := f.reviews.GetUMKMReviews(f.ctx, umkmID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), umkmReviews.Total)
}

func TestServiceRatingResetsWhenLastReviewDeleted(t *testing.T) {
	f := newFixture(t)
	_, _, serviceID := f.parties(50000)
	customerID, bookingID := f.completedBooking(serviceID)

	res := f.review(customerID, bookingID, 3)
	f.publisher.reset()
	deleted, err := f.reviews.DeleteReview(f.ctx, customerID, res.Review.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, deleted.ServiceRating)
	assert.Equal(t, int64(0), deleted.ReviewCount)
	assert.Equal(t, 0.0, f.serviceRow(serviceID).Rating)
	assert.Equal(t, []string{events.ReviewDeleted}, f.publisher.types())
}

func TestCreateReviewRules(t *testing.T) {
	for _, status := range []bookingDomain.BookingStatus{
		bookingDomain.StatusPending,
		bookingDomain.StatusConfirmed,
		bookingDomain.StatusPendingPayment,
		bookingDomain.StatusCancelled,
	} {
		t.Run("booking "+string(status), func(t *testing.T) {
			f := newFixture(t)
			_, customerID, serviceID := f.parties(50000)
			bk := f.booking(customerID, serviceID)
			f.forceStatus(bk.ID, status)

			_, err := f.reviews.CreateReview(f.ctx, customerID, application.CreateReviewRequest{BookingID: bk.ID, Rating: 5})
			assert.True(t, errors.Is(err, domain.ErrNotReviewable), "got %v", err)
			assert.Zero(t, f.serviceRow(serviceID).ReviewCount)
		})
	}

	t.Run("second review", func(t *testing.T) {
		f := newFixture(t)
		_, _, serviceID := f.parties(50000)
		customerID, bookingID := f.completedBooking(serviceID)
		f.review(customerID, bookingID, 5)

		_, err := f.reviews.CreateReview(f.ctx, customerID, application.CreateReviewRequest{BookingID: bookingID, Rating: 1})
		assert.True(t, errors.Is(err, domain.ErrNotReviewable))
		assert.Equal(t, 5.0, f.serviceRow(serviceID).Rating)
	})

	t.Run("not the booking's customer", func(t *testing.T) {
		f := newFixture(t)
		_, _, serviceID := f.parties(50000)
		_, bookingID := f.completedBooking(serviceID)

		_, err := f.reviews.CreateReview(f.ctx, f.user(auth.RoleCustomer), application.CreateReviewRequest{BookingID: bookingID, Rating: 4})
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("rating out of range", func(t *testing.T) {
		f := newFixture(t)
		_, _, serviceID := f.parties(50000)
		customerID, bookingID := f.completedBooking(serviceID)

		_, err := f.reviews.CreateReview(f.ctx, customerID, application.CreateReviewRequest{BookingID: bookingID, Rating: 6})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestDeleteReviewOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	umkmID, _, serviceID := f.parties(50000)
	customerID, bookingID := f.completedBooking(serviceID)
	res := f.review(customerID, bookingID, 4)

	for _, other := range []uuid.UUID{umkmID, f.user(auth.RoleCustomer)} {
		_, err := f.reviews.DeleteReview(f.ctx, other, res.Review.ID)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	}
	assert.Equal(t, int64(1), f.serviceRow(serviceID).ReviewCount)

	_, err := f.reviews.DeleteReview(f.ctx, customerID, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReconcileAllRepairsDrift(t *testing.T) {
	f := newFixture(t)
	_, _, serviceA := f.parties(50000)
	_, _, serviceB := f.parties(60000)
	customerID, bookingID := f.completedBooking(serviceA)
	f.review(customerID, bookingID, 4)

	require.NoError(t, f.db.Exec("UPDATE services SET rating = 1.5, review_count = 9 WHERE id = ?", serviceA).Error)
	require.NoError(t, f.db.Exec("UPDATE services SET rating = 5, review_count = 2 WHERE id = ?", serviceB).Error)
	require.NoError(t, f.db.Exec("UPDATE reviews SET service_id = ? WHERE booking_id = ?", serviceB, bookingID).Error)

	require.NoError(t, application.NewRatingAggregator(zap.NewNop()).ReconcileAll(f.ctx, f.store))

	a := f.serviceRow(serviceA)
	assert.Equal(t, 4.0, a.Rating)
	assert.Equal(t, int64(1), a.ReviewCount)
	b := f.serviceRow(serviceB)
	assert.Equal(t, 0.0, b.Rating)
	assert.Equal(t, int64(0), b.ReviewCount)

	reviews, err := f.reviews.GetServiceReviews(f.ctx, serviceA, 1, 20)
	require.NoError(t, err)
	require.Len(t, reviews.Items, 1)
	assert.Equal(t, serviceA, reviews.Items[0].ServiceID)
}

func reviewOf(bookingID uuid.UUID, rating int) application.CreateReviewRequest {
	return application.CreateReviewRequest{BookingID: bookingID, Rating: rating}
}

func TestCreateReviewIsAtomic(t *testing.T) {
	f := newFixture(t)
	_, _, serviceID := f.parties(50000)
	customerID, bookingID := f.completedBooking(serviceID)
	f.publisher.reset()
	f.failUpdatesOn("services")

	_, err := f.reviews.CreateReview(f.ctx, customerID, reviewOf(bookingID, 5))
	require.Error(t, err)

	assert.Zero(t, f.count(&repository.ReviewModel{}, "booking_id = ?", bookingID))
	row := f.serviceRow(serviceID)
	assert.Equal(t, 0.0, row.Rating)
	assert.Zero(t, row.ReviewCount)
	assert.Empty(t, f.publisher.types())
}

func TestDeleteReviewIsAtomic(t *testing.T) {
	f := newFixture(t)
	_, _, serviceID := f.parties(50000)
	customerID, bookingID := f.completedBooking(serviceID)
	created := f.review(customerID, bookingID, 4)
	f.publisher.reset()
	f.failUpdatesOn("services")

	_, err := f.reviews.DeleteReview(f.ctx, customerID, created.Review.ID)
	require.Error(t, err)

	assert.Equal(t, int64(1), f.count(&repository.ReviewModel{}, "id = ?", created.Review.ID))
	row := f.serviceRow(serviceID)
	assert.Equal(t, 4.0, row.Rating)
	assert.Equal(t, int64(1), row.ReviewCount)
	assert.Empty(t, f.publisher.types())
}

// orderedRepos records the order of the calls a rating recompute makes.
type orderedRepos struct {
	application.Repositories
	calls *[]string
}

func (r orderedRepos) Services() catalog.ServiceRepository {
	return orderedServices{ServiceRepository: r.Repositories.Services(), calls: r.calls}
}

func (r orderedRepos) Reviews() review.ReviewRepository {
	return orderedReviews{ReviewRepository: r.Repositories.Reviews(), calls: r.calls}
}

type orderedServices struct {
	catalog.ServiceRepository
	calls *[]string
}

func (s orderedServices) LockByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	*s.calls = append(*s.calls, "lock")
	return s.ServiceRepository.LockByID(ctx, id)
}

func (s orderedServices) SetRating(ctx context.Context, id uuid.UUID, rating float64, count int64) error {
	*s.calls = append(*s.calls, "set")
	return s.ServiceRepository.SetRating(ctx, id, rating, count)
}

type orderedReviews struct {
	review.ReviewRepository
	calls *[]string
}

func (r orderedReviews) AggregateForService(ctx context.Context, serviceID uuid.UUID) (float64, int64, error) {
	*r.calls = append(*r.calls, "aggregate")
	return r.ReviewRepository.AggregateForService(ctx, serviceID)
}

func TestRecomputeLocksServiceBeforeAggregating(t *testing.T) {
	f := newFixture(t)
	_, _, serviceID := f.parties(50000)
	c1, b1 := f.completedBooking(serviceID)
	c2, b2 := f.completedBooking(serviceID)
	f.review(c1, b1, 5)
	f.review(c2, b2, 2)

	var calls []string
	aggregator := application.NewRatingAggregator(zap.NewNop())
	err := f.store.WithinTransaction(f.ctx, func(ctx context.Context, repos application.Repositories) error {
		rating, count, err := aggregator.Recompute(ctx, orderedRepos{Repositories: repos, calls: &calls}, serviceID)
		assert.Equal(t, 3.5, rating)
		assert.Equal(t, int64(2), count)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "aggregate", "set"}, calls)

	_, _, err = aggregator.Recompute(f.ctx, f.store.Repositories(), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReviewAndChatTimestampsFollowServiceClock(t *testing.T) {
	f := newFixture(t)
	umkmID, _, serviceID := f.parties(50000)
	customerID, bookingID := f.completedBooking(serviceID)

	f.publisher.reset()
	res := f.review(customerID, bookingID, 4)
	assert.True(t, fixedNow.Equal(res.Review.CreatedAt), "review created_at %v", res.Review.CreatedAt)
	require.Len(t, f.publisher.events, 1)
	evt := f.publisher.events[0].data.(events.ReviewEvent)
	assert.True(t, fixedNow.Equal(evt.OccurredAt), "event occurred_at %v", evt.OccurredAt)

	c, err := f.chats.GetOrCreateChat(f.ctx, customerID, umkmID)
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(c.CreatedAt), "chat created_at %v", c.CreatedAt)
}
