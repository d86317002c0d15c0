package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period selects the window of the dashboard's period figures.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Start returns the beginning of the window containing now. Week and quarter
// are rolling 7 and 90 days; month and year start on the Jakarta calendar.
// An empty period means month.
func (p Period) Start(now time.Time) (time.Time, error) {
	local := now.In(booking.Jakarta)
	switch p {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case PeriodMonth, "":
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, booking.Jakarta), nil
	case PeriodQuarter:
		return now.Add(-90 * 24 * time.Hour), nil
	case PeriodYear:
		return time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, booking.Jakarta), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period: %s", p)
	}
}

// Revenue sums total_price of completed bookings.
type Revenue struct {
	Total  decimal.Decimal `json:"total"`
	Period decimal.Decimal `json:"period"`
}

// PopularService is one row of the top-services ranking.
type PopularService struct {
	ServiceID    uuid.UUID       `json:"service_id"`
	Name         string          `json:"name"`
	BookingCount int64           `json:"booking_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	Rating       float64         `json:"rating"`
}

// RatingSummary averages every review across an UMKM's services.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// AnalyticsRepository answers dashboard queries for one UMKM.
type AnalyticsRepository interface {
	Revenue(ctx context.Context, umkmID uuid.UUID, since time.Time) (Revenue, error)
	BookingCounts(ctx context.Context, umkmID uuid.UUID, since time.Time) (total int64, period int64, err error)
	CountByStatus(ctx context.Context, umkmID uuid.UUID) (map[string]int64, error)
	Rating(ctx context.Context, umkmID uuid.UUID) (RatingSummary, error)
	PopularServices(ctx context.Context, umkmID uuid.UUID, limit int) ([]PopularService, error)
}
