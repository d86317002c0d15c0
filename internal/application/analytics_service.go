package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/analytics"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const popularServicesLimit = 5

// DashboardDTO is the UMKM analytics dashboard.
type DashboardDTO struct {
	Period          string                     `json:"period"`
	Since           time.Time                  `json:"since"`
	Revenue         analytics.Revenue          `json:"revenue"`
	TotalBookings   int64                      `json:"total_bookings"`
	PeriodBookings  int64                      `json:"period_bookings"`
	ByStatus        map[string]int64           `json:"by_status"`
	Rating          analytics.RatingSummary    `json:"rating"`
	DisplayRating   float64                    `json:"display_rating"`
	FavoriteCount   int64                      `json:"favorite_count"`
	PopularServices []analytics.PopularService `json:"popular_services"`
}

// AnalyticsService computes dashboard figures for an UMKM.
type AnalyticsService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store Store, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// GetDashboard returns all dashboard figures for period.
func (s *AnalyticsService) GetDashboard(ctx context.Context, umkmID uuid.UUID, period string) (*DashboardDTO, error) {
	p := analytics.Period(period)
	since, err := p.Start(s.now())
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	since = since.UTC()
	if p == "" {
		p = analytics.PeriodMonth
	}

	repos := s.store.Repositories()
	if err := ensureUMKM(ctx, repos, umkmID); err != nil {
		return nil, err
	}

	revenue, err := repos.Analytics().Revenue(ctx, umkmID, since)
	if err != nil {
		return nil, err
	}
	total, inPeriod, err := repos.Analytics().BookingCounts(ctx, umkmID, since)
	if err != nil {
		return nil, err
	}
	byStatus, err := repos.Analytics().CountByStatus(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	rating, err := repos.Analytics().Rating(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	favorites, err := repos.Favorites().CountByUMKMID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	popular, err := repos.Analytics().PopularServices(ctx, umkmID, popularServicesLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardDTO{
		Period:          string(p),
		Since:           since,
		Revenue:         revenue,
		TotalBookings:   total,
		PeriodBookings:  inPeriod,
		ByStatus:        byStatus,
		Rating:          rating,
		DisplayRating:   review.DisplayRating(rating.Average),
		FavoriteCount:   favorites,
		PopularServices: popular,
	}, nil
}
