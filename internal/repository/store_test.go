package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/database"
	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/user"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store := repository.NewGormStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func seedBooking(t *testing.T, store *repository.GormStore) *bookingDomain.Booking {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()

	owner, err := user.NewUser("Owner", "owner-"+uuid.NewString()[:6]+"@example.com", "secret123", "", auth.RoleUMKM)
	require.NoError(t, err)
	require.NoError(t, repos.Users().Save(ctx, owner))
	customer, err := user.NewUser("Customer", "cust-"+uuid.NewString()[:6]+"@example.com", "secret123", "", auth.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, repos.Users().Save(ctx, customer))

	svc, err := catalog.NewService(owner.ID(), "Pijat", "", decimal.NewFromInt(100000), "wellness")
	require.NoError(t, err)
	require.NoError(t, repos.Services().Save(ctx, svc))

	now := time.Now()
	bk, err := bookingDomain.NewBooking(customer.ID(), svc.ID(), now.Add(48*time.Hour), svc.Price(), "", nil, now)
	require.NoError(t, err)
	require.NoError(t, repos.Bookings().Save(ctx, bk))
	return bk
}

func TestBookingUpdateDetectsStaleVersion(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seeded := seedBooking(t, store)

	first, err := store.Repositories().Bookings().FindByID(ctx, seeded.ID())
	require.NoError(t, err)
	second, err := store.Repositories().Bookings().FindByID(ctx, seeded.ID())
	require.NoError(t, err)

	require.NoError(t, first.Transition(bookingDomain.StatusConfirmed, bookingDomain.ActorUMKM, time.Now()))
	first.IncrementVersion()
	require.NoError(t, store.Repositories().Bookings().Update(ctx, first))

	require.NoError(t, second.Transition(bookingDomain.StatusCancelled, bookingDomain.ActorUMKM, time.Now()))
	second.IncrementVersion()
	err = store.Repositories().Bookings().Update(ctx, second)
	assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

	stored, err := store.Repositories().Bookings().FindByID(ctx, seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusConfirmed, stored.Status())
	assert.Equal(t, int64(2), stored.Version())
}

func TestWithinTransactionRollsBack(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seeded := seedBooking(t, store)

	boom := errors.New("boom")
	err := store.WithinTransaction(ctx, func(ctx context.Context, repos application.Repositories) error {
		bk, err := repos.Bookings().FindByID(ctx, seeded.ID())
		if err != nil {
			return err
		}
		if err := bk.Transition(bookingDomain.StatusConfirmed, bookingDomain.ActorUMKM, time.Now()); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := repos.Bookings().Update(ctx, bk); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := store.Repositories().Bookings().FindByID(ctx, seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusPending, stored.Status())
	assert.Equal(t, int64(1), stored.Version())
}

func TestBookingNotFound(t *testing.T) {
	store := newStore(t)
	_, err := store.Repositories().Bookings().FindByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
