package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/domain/analytics"
	"github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAnalyticsRepository runs dashboard aggregates with raw SQL.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) Revenue(ctx context.Context, umkmID uuid.UUID, since time.Time) (analytics.Revenue, error) {
	var row struct {
		Total  decimal.NullDecimal
		Period decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			SUM(b.total_price) AS total,
			SUM(CASE WHEN b.completed_at >= ? THEN b.total_price ELSE 0 END) AS period
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE s.umkm_id = ? AND b.status = ?`,
		since, umkmID, string(booking.StatusCompleted)).Scan(&row).Error
	if err != nil {
		return analytics.Revenue{}, fmt.Errorf("failed to compute revenue: %w", err)
	}
	return analytics.Revenue{Total: row.Total.Decimal, Period: row.Period.Decimal}, nil
}

func (r *GormAnalyticsRepository) BookingCounts(ctx context.Context, umkmID uuid.UUID, since time.Time) (int64, int64, error) {
	var row struct {
		Total  int64
		Period int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(b.id) AS total,
			COALESCE(SUM(CASE WHEN b.created_at >= ? THEN 1 ELSE 0 END), 0) AS period
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE s.umkm_id = ?`, since, umkmID).Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return row.Total, row.Period, nil
}

func (r *GormAnalyticsRepository) CountByStatus(ctx context.Context, umkmID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.status AS status, COUNT(*) AS total
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE s.umkm_id = ?
		GROUP BY b.status`, umkmID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[string]int64, len(booking.AllStatuses()))
	for _, s := range booking.AllStatuses() {
		counts[string(s)] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormAnalyticsRepository) Rating(ctx context.Context, umkmID uuid.UUID) (analytics.RatingSummary, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(CAST(r.rating AS FLOAT)), 0) AS average, COUNT(r.id) AS total
		FROM reviews r
		JOIN bookings b ON b.id = r.booking_id
		JOIN services s ON s.id = b.service_id
		WHERE s.umkm_id = ?`, umkmID).Scan(&row).Error
	if err != nil {
		return analytics.RatingSummary{}, fmt.Errorf("failed to compute rating: %w", err)
	}
	return analytics.RatingSummary{Average: row.Average, Count: row.Total}, nil
}

// PopularServices ranks services by booking count. Revenue counts completed
// bookings only.
func (r *GormAnalyticsRepository) PopularServices(ctx context.Context, umkmID uuid.UUID, limit int) ([]analytics.PopularService, error) {
	var rows []struct {
		ServiceID    uuid.UUID
		Name         string
		BookingCount int64
		Revenue      decimal.NullDecimal
		Rating       float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id AS service_id,
			s.name AS name,
			COUNT(b.id) AS booking_count,
			SUM(CASE WHEN b.status = ? THEN b.total_price ELSE 0 END) AS revenue,
			s.rating AS rating
		FROM services s
		LEFT JOIN bookings b ON b.service_id = s.id
		WHERE s.umkm_id = ?
		GROUP BY s.id, s.name, s.rating
		ORDER BY booking_count DESC, s.name ASC
		LIMIT ?`, string(booking.StatusCompleted), umkmID, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank services: %w", err)
	}

	out := make([]analytics.PopularService, len(rows))
	for i, row := range rows {
		out[i] = analytics.PopularService{
			ServiceID:    row.ServiceID,
			Name:         row.Name,
			BookingCount: row.BookingCount,
			Revenue:      row.Revenue.Decimal,
			Rating:       row.Rating,
		}
	}
	return out, nil
}
