package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Review", id.String())
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return toReviewDomain(&model), nil
}

func (r *GormReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check booking review: %w", err)
	}
	return count > 0, nil
}

// Save inserts a review. The unique booking_id index makes a concurrent second
// review a no-op, which is reported as NotReviewable.
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotReviewableError("booking already has a review")
	}
	return nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Review", id.String())
	}
	return nil
}

// FindByServiceID joins through bookings so a stale reviews.service_id never
// hides or misattributes a review.
func (r *GormReviewRepository) FindByServiceID(ctx context.Context, serviceID uuid.UUID, page, limit int) ([]*review.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.service_id = ?", serviceID)
	return r.paginate(q, page, limit)
}

func (r *GormReviewRepository) FindByUMKMID(ctx context.Context, umkmID uuid.UUID, page, limit int) ([]*review.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.umkm_id = ?", umkmID)
	return r.paginate(q, page, limit)
}

func (r *GormReviewRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*review.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("reviews.customer_id = ?", customerID)
	return r.paginate(q, page, limit)
}

// AggregateForService computes mean and count over the booking-mediated set.
func (r *GormReviewRepository) AggregateForService(ctx context.Context, serviceID uuid.UUID) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(CAST(r.rating AS FLOAT)), 0) AS average, COUNT(r.id) AS total
		FROM reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.service_id = ?`, serviceID).Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate service rating: %w", err)
	}
	return row.Average, row.Total, nil
}

func (r *GormReviewRepository) Distribution(ctx context.Context, serviceID uuid.UUID) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Total  int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.rating AS rating, COUNT(*) AS total
		FROM reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.service_id = ?
		GROUP BY r.rating`, serviceID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rating distribution: %w", err)
	}

	dist := make(map[int]int64, review.MaxRating)
	for star := review.MinRating; star <= review.MaxRating; star++ {
		dist[star] = 0
	}
	for _, row := range rows {
		dist[row.Rating] = row.Total
	}
	return dist, nil
}

// SyncServiceIDs repairs reviews whose cached service_id disagrees with the booking.
func (r *GormReviewRepository) SyncServiceIDs(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE reviews
		SET service_id = (SELECT b.service_id FROM bookings b WHERE b.id = reviews.booking_id)
		WHERE service_id <> (SELECT b.service_id FROM bookings b WHERE b.id = reviews.booking_id)`)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sync review service IDs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormReviewRepository) paginate(q *gorm.DB, page, limit int) ([]*review.Review, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var models []ReviewModel
	if err := q.Session(&gorm.Session{}).
		Select("reviews.*").
		Order("reviews.created_at DESC").
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewDomain(&models[i])
	}
	return reviews, total, nil
}

func toReviewModel(rv *review.Review) ReviewModel {
	return ReviewModel{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		CustomerID: rv.CustomerID(),
		ServiceID:  rv.ServiceID(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}

func toReviewDomain(m *ReviewModel) *review.Review {
	return review.Reconstruct(m.ID, m.BookingID, m.CustomerID, m.ServiceID, m.Rating, m.Comment, m.CreatedAt)
}
