package application_test

import (
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestPromotionLifecycle(t *testing.T) {
	f := newFixture(t)
	umkmID := f.user(auth.RoleUMKM)

	march, err := f.promotions.CreatePromotion(f.ctx, umkmID, application.CreatePromotionRequest{
		Title: "Ramadan", DiscountPercentage: decPtr(15), StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	require.NoError(t, err)
	april, err := f.promotions.CreatePromotion(f.ctx, umkmID, application.CreatePromotionRequest{
		Title: "Lebaran", DiscountAmount: decPtr(20000), StartDate: "2026-04-01", EndDate: "2026-04-10",
	})
	require.NoError(t, err)
	assert.True(t, march.IsActive)
	assert.Nil(t, march.DiscountAmount)

	all, err := f.promotions.ListPromotions(f.ctx, umkmID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	running, err := f.promotions.RunningPromotions(f.ctx, umkmID)
	require.NoError(t, err)
	require.Len(t, running, 1)
	assert.Equal(t, march.ID, running[0].ID)

	off := false
	updated, err := f.promotions.UpdatePromotion(f.ctx, umkmID, march.ID, application.UpdatePromotionRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, int64(2), updated.Version)

	running, err = f.promotions.RunningPromotions(f.ctx, umkmID)
	require.NoError(t, err)
	assert.Empty(t, running)

	require.NoError(t, f.promotions.DeletePromotion(f.ctx, umkmID, april.ID))
	assert.Equal(t, int64(1), f.count(&repository.PromotionModel{}, "umkm_id = ?", umkmID))
}

func TestPromotionValidationAndOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(auth.RoleUMKM)

	_, err := f.promotions.CreatePromotion(f.ctx, owner, application.CreatePromotionRequest{
		Title: "Both", DiscountPercentage: decPtr(10), DiscountAmount: decPtr(5000), StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.promotions.CreatePromotion(f.ctx, owner, application.CreatePromotionRequest{
		Title: "Backwards", DiscountPercentage: decPtr(10), StartDate: "2026-03-31", EndDate: "2026-03-01",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))

	_, err = f.promotions.CreatePromotion(f.ctx, owner, application.CreatePromotionRequest{
		Title: "Garbled", DiscountPercentage: decPtr(10), StartDate: "next week", EndDate: "2026-03-31",
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.promotions.CreatePromotion(f.ctx, f.user(auth.RoleCustomer), application.CreatePromotionRequest{
		Title: "Customer", DiscountPercentage: decPtr(10), StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	p, err := f.promotions.CreatePromotion(f.ctx, owner, application.CreatePromotionRequest{
		Title: "Owned", DiscountPercentage: decPtr(10), StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	require.NoError(t, err)

	other := f.user(auth.RoleUMKM)
	title := "Hijacked"
	_, err = f.promotions.UpdatePromotion(f.ctx, other, p.ID, application.UpdatePromotionRequest{Title: &title})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	err = f.promotions.DeletePromotion(f.ctx, other, p.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	running, err := f.promotions.RunningPromotions(f.ctx, other)
	require.NoError(t, err)
	assert.Empty(t, running)
}
