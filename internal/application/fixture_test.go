package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/database"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/user"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is 10:00 WIB on 10 March 2026.
var fixedNow = time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

type publishedEvent struct {
	topic     string
	eventType string
	subject   string
	data      interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, eventType, subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic, eventType, subject, data})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type fixture struct {
	t         *testing.T
	ctx       context.Context
	db        *gorm.DB
	store     *repository.GormStore
	publisher *recordingPublisher

	bookings  *application.BookingService
	payments  *application.PaymentService
	reviews   *application.ReviewService
	favorites *application.FavoriteService
	chats     *application.ChatService
	catalog   *application.CatalogService
	analytics *application.AnalyticsService

	schedules  *application.ScheduleService
	team       *application.TeamService
	promotions *application.PromotionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Connect(database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.NewGormStore(db)
	require.NoError(t, store.AutoMigrate())

	clock := func() time.Time { return fixedNow }
	pub := &recordingPublisher{}
	return &fixture{
		t:         t,
		ctx:       context.Background(),
		db:        db,
		store:     store,
		publisher: pub,
		bookings:  application.NewBookingService(store, pub, logger).WithClock(clock),
		payments:  application.NewPaymentService(store, pub, logger).WithClock(clock),
		reviews:   application.NewReviewService(store, application.NewRatingAggregator(logger), pub, logger).WithClock(clock),
		favorites: application.NewFavoriteService(store, logger).WithClock(clock),
		chats:     application.NewChatService(store, logger).WithClock(clock),
		catalog:   application.NewCatalogService(store, logger),
		analytics: application.NewAnalyticsService(store, logger).WithClock(clock),

		schedules:  application.NewScheduleService(store, logger).WithClock(clock),
		team:       application.NewTeamService(store, logger).WithClock(clock),
		promotions: application.NewPromotionService(store, logger).WithClock(clock),
	}
}

func (f *fixture) user(role auth.Role) uuid.UUID {
	f.t.Helper()
	u, err := user.NewUser("User "+string(role), uuid.NewString()[:8]+"@example.com", "secret123", "", role)
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Repositories().Users().Save(f.ctx, u))
	return u.ID()
}

func (f *fixture) service(umkmID uuid.UUID, price int64) uuid.UUID {
	f.t.Helper()
	svc, err := catalog.NewService(umkmID, "Cuci Sofa", "", decimal.NewFromInt(price), "cleaning")
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Repositories().Services().Save(f.ctx, svc))
	return svc.ID()
}

// booking creates a pending booking for tomorrow.
func (f *fixture) booking(customerID, serviceID uuid.UUID) *application.BookingDTO {
	f.t.Helper()
	bk, err := f.bookings.CreateBooking(f.ctx, customerID, application.CreateBookingRequest{
		ServiceID:   serviceID,
		BookingDate: "2026-03-11",
	})
	require.NoError(f.t, err)
	return bk
}

// forceStatus moves a booking straight to status, bypassing the state machine.
func (f *fixture) forceStatus(bookingID uuid.UUID, status bookingDomain.BookingStatus) {
	f.t.Helper()
	require.NoError(f.t, f.db.Model(&repository.BookingModel{}).
		Where("id = ?", bookingID).
		Update("status", string(status)).Error)
}

func (f *fixture) bookingRow(bookingID uuid.UUID) repository.BookingModel {
	f.t.Helper()
	var m repository.BookingModel
	require.NoError(f.t, f.db.Where("id = ?", bookingID).First(&m).Error)
	return m
}

func (f *fixture) serviceRow(serviceID uuid.UUID) repository.ServiceModel {
	f.t.Helper()
	var m repository.ServiceModel
	require.NoError(f.t, f.db.Where("id = ?", serviceID).First(&m).Error)
	return m
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// failUpdatesOn makes every UPDATE against table fail.
func (f *fixture) failUpdatesOn(table string) {
	f.t.Helper()
	err := f.db.Callback().Update().Before("gorm:update").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("injected failure"))
		}
	})
	require.NoError(f.t, err)
}

// parties seeds one UMKM with a service and one customer.
func (f *fixture) parties(price int64) (umkmID, customerID, serviceID uuid.UUID) {
	umkmID = f.user(auth.RoleUMKM)
	customerID = f.user(auth.RoleCustomer)
	serviceID = f.service(umkmID, price)
	return
}
