package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingAggregator keeps Service.rating and Service.review_count equal to the
// mean and count of reviews whose booking is for that service.
type RatingAggregator struct {
	logger *zap.Logger
}

// NewRatingAggregator creates a new RatingAggregator.
func NewRatingAggregator(logger *zap.Logger) *RatingAggregator {
	return &RatingAggregator{logger: logger}
}

// Recompute derives the rating of serviceID from repos and stores it. Callers
// pass the transaction's repositories so the write commits with the review
// change that caused it. The service row is locked before the reviews are
// read, so concurrent recomputes of one service run one after another and
// the later one sees the earlier one's review.
func (a *RatingAggregator) Recompute(ctx context.Context, repos Repositories, serviceID uuid.UUID) (float64, int64, error) {
	if _, err := repos.Services().LockByID(ctx, serviceID); err != nil {
		return 0, 0, err
	}
	rating, count, err := repos.Reviews().AggregateForService(ctx, serviceID)
	if err != nil {
		return 0, 0, err
	}
	if err := repos.Services().SetRating(ctx, serviceID, rating, count); err != nil {
		return 0, 0, err
	}
	return rating, count, nil
}

// ReconcileAll repairs reviews.service_id from the owning bookings and then
// recomputes every service's rating in one transaction.
func (a *RatingAggregator) ReconcileAll(ctx context.Context, store Store) error {
	var repaired int64
	var services int
	err := store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		repaired, err = repos.Reviews().SyncServiceIDs(ctx)
		if err != nil {
			return err
		}

		ids, err := repos.Services().ListIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, _, err := a.Recompute(ctx, repos, id); err != nil {
				return err
			}
		}
		services = len(ids)
		return nil
	})
	if err != nil {
		return err
	}

	if repaired > 0 {
		a.logger.Warn("repaired reviews with stale service_id", zap.Int64("count", repaired))
	}
	a.logger.Info("service ratings reconciled", zap.Int("services", services))
	return nil
}
