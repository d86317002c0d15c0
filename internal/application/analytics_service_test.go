package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	umkmID, customerID, sofa := f.parties(80000)
	carpet := f.service(umkmID, 50000)

	// Completed this month.
	done := f.booking(customerID, sofa)
	_, err := f.bookings.ConfirmBooking(f.ctx, done.ID, umkmID)
	require.NoError(t, err)
	_, err = f.bookings.CompleteBooking(f.ctx, done.ID, umkmID)
	require.NoError(t, err)

	// Completed last month.
	old := f.booking(customerID, sofa)
	_, err = f.bookings.ConfirmBooking(f.ctx, old.ID, umkmID)
	require.NoError(t, err)
	_, err = f.bookings.CompleteBooking(f.ctx, old.ID, umkmID)
	require.NoError(t, err)
	february := time.Date(2026, 2, 20, 2, 0, 0, 0, time.UTC)
	require.NoError(t, f.db.Model(&repository.BookingModel{}).Where("id = ?", old.ID).
		Updates(map[string]interface{}{"completed_at": february, "created_at": february}).Error)

	cancelled := f.booking(customerID, carpet)
	_, err = f.bookings.RejectBooking(f.ctx, cancelled.ID, umkmID, "")
	require.NoError(t, err)

	_, err = f.reviews.CreateReview(f.ctx, customerID, reviewOf(done.ID, 4))
	require.NoError(t, err)
	_, err = f.favorites.ToggleFavorite(f.ctx, customerID, umkmID)
	require.NoError(t, err)

	d, err := f.analytics.GetDashboard(f.ctx, umkmID, "")
	require.NoError(t, err)

	assert.Equal(t, "month", d.Period)
	assert.Equal(t, time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC), d.Since)
	assert.True(t, d.Revenue.Total.Equal(decimal.NewFromInt(160000)), "total %s", d.Revenue.Total)
	assert.True(t, d.Revenue.Period.Equal(decimal.NewFromInt(80000)), "period %s", d.Revenue.Period)
	assert.Equal(t, int64(3), d.TotalBookings)
	assert.Equal(t, int64(2), d.PeriodBookings)
	assert.Equal(t, int64(2), d.ByStatus["completed"])
	assert.Equal(t, int64(1), d.ByStatus["cancelled"])
	assert.Equal(t, int64(0), d.ByStatus["pending"])
	assert.Equal(t, 4.0, d.Rating.Average)
	assert.Equal(t, int64(1), d.FavoriteCount)

	require.Len(t, d.PopularServices, 2)
	assert.Equal(t, sofa, d.PopularServices[0].ServiceID)
	assert.Equal(t, int64(2), d.PopularServices[0].BookingCount)
	assert.True(t, d.PopularServices[1].Revenue.IsZero())

	year, err := f.analytics.GetDashboard(f.ctx, umkmID, "year")
	require.NoError(t, err)
	assert.True(t, year.Revenue.Period.Equal(decimal.NewFromInt(160000)))
}

func TestDashboardRejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.analytics.GetDashboard(f.ctx, f.user(auth.RoleUMKM), "decade")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.analytics.GetDashboard(f.ctx, f.user(auth.RoleCustomer), "week")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
