package promotion

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, booking.Jakarta)
}

func TestDiscountExactlyOne(t *testing.T) {
	cases := []struct {
		name     string
		discount Discount
		ok       bool
	}{
		{"none", Discount{}, false},
		{"both", Discount{Percentage: dec("10"), Amount: dec("5000")}, false},
		{"zero percent", Discount{Percentage: dec("0")}, false},
		{"over hundred", Discount{Percentage: dec("100.5")}, false},
		{"negative amount", Discount{Amount: dec("-1")}, false},
		{"full percent", Discount{Percentage: dec("100")}, true},
		{"amount", Discount{Amount: dec("25000")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPromotion(uuid.New(), "Promo", "", tc.discount, day(2026, 3, 1), day(2026, 3, 31), time.Now())
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
			}
		})
	}
}

func TestPromotionPeriod(t *testing.T) {
	_, err := NewPromotion(uuid.New(), "Promo", "", Discount{Amount: dec("1000")}, day(2026, 3, 10), day(2026, 3, 9), time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))

	p, err := NewPromotion(uuid.New(), "Promo", "", Discount{Amount: dec("1000")}, day(2026, 3, 10), day(2026, 3, 10), time.Now())
	require.NoError(t, err, "single-day promotion")

	// 2026-03-10 23:30 WIB is still the 10th in Jakarta, 16:30 UTC.
	assert.True(t, p.IsRunningAt(time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC)))
	// 2026-03-11 00:30 WIB is the 11th in Jakarta but the 10th in UTC.
	assert.False(t, p.IsRunningAt(time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)))
	assert.False(t, p.IsRunningAt(day(2026, 3, 9)))

	inactive := false
	require.NoError(t, p.Update(nil, nil, nil, nil, nil, &inactive, time.Now()))
	assert.False(t, p.IsRunningAt(day(2026, 3, 10)))
}

func TestPromotionUpdateValidatesFirst(t *testing.T) {
	p, err := NewPromotion(uuid.New(), "Promo", "", Discount{Percentage: dec("10")}, day(2026, 3, 1), day(2026, 3, 31), time.Now())
	require.NoError(t, err)

	title := "Renamed"
	end := day(2026, 2, 1)
	err = p.Update(&title, nil, nil, nil, &end, nil, time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))
	assert.Equal(t, "Promo", p.Title())
	assert.Equal(t, int64(1), p.Version())

	err = p.Update(nil, nil, &Discount{}, nil, nil, nil, time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))

	require.NoError(t, p.Update(&title, nil, &Discount{Amount: dec("5000")}, nil, nil, nil, time.Now()))
	assert.Equal(t, "Renamed", p.Title())
	assert.Nil(t, p.Discount().Percentage)
	assert.True(t, p.Discount().Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, int64(2), p.Version())
}
