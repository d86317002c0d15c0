package repository

import (
	"context"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/domain/analytics"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/chat"
	"github.com/JasaIn/service-booking/internal/domain/favorite"
	"github.com/JasaIn/service-booking/internal/domain/notification"
	"github.com/JasaIn/service-booking/internal/domain/payment"
	"github.com/JasaIn/service-booking/internal/domain/promotion"
	"github.com/JasaIn/service-booking/internal/domain/proof"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/JasaIn/service-booking/internal/domain/schedule"
	"github.com/JasaIn/service-booking/internal/domain/team"
	"github.com/JasaIn/service-booking/internal/domain/user"
	"gorm.io/gorm"
)

// GormStore implements application.Store on a *gorm.DB.
type GormStore struct {
	db    *gorm.DB
	repos *gormRepositories
}

// NewGormStore creates a store bound to db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, repos: newGormRepositories(db)}
}

// Repositories returns repositories that run outside any transaction.
func (s *GormStore) Repositories() application.Repositories {
	return s.repos
}

// WithinTransaction runs fn with repositories bound to a new transaction.
func (s *GormStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos application.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newGormRepositories(tx))
	})
}

// AutoMigrate creates or updates every table from the GORM models.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(AllModels()...)
}

type gormRepositories struct {
	users         *GormUserRepository
	services      *GormServiceRepository
	bookings      *GormBookingRepository
	payments      *GormPaymentRepository
	proofs        *GormProofRepository
	reviews       *GormReviewRepository
	favorites     *GormFavoriteRepository
	chats         *GormChatRepository
	notifications *GormNotificationRepository
	analytics     *GormAnalyticsRepository
	schedules     *GormScheduleRepository
	team          *GormTeamRepository
	promotions    *GormPromotionRepository
}

func newGormRepositories(db *gorm.DB) *gormRepositories {
	return &gormRepositories{
		users:         NewGormUserRepository(db),
		services:      NewGormServiceRepository(db),
		bookings:      NewGormBookingRepository(db),
		payments:      NewGormPaymentRepository(db),
		proofs:        NewGormProofRepository(db),
		reviews:       NewGormReviewRepository(db),
		favorites:     NewGormFavoriteRepository(db),
		chats:         NewGormChatRepository(db),
		notifications: NewGormNotificationRepository(db),
		analytics:     NewGormAnalyticsRepository(db),
		schedules:     NewGormScheduleRepository(db),
		team:          NewGormTeamRepository(db),
		promotions:    NewGormPromotionRepository(db),
	}
}

func (r *gormRepositories) Users() user.UserRepository                         { return r.users }
func (r *gormRepositories) Services() catalog.ServiceRepository                { return r.services }
func (r *gormRepositories) Bookings() bookingDomain.BookingRepository          { return r.bookings }
func (r *gormRepositories) Payments() payment.PaymentRepository                { return r.payments }
func (r *gormRepositories) Proofs() proof.ProofRepository                      { return r.proofs }
func (r *gormRepositories) Reviews() review.ReviewRepository                   { return r.reviews }
func (r *gormRepositories) Favorites() favorite.FavoriteRepository             { return r.favorites }
func (r *gormRepositories) Chats() chat.ChatRepository                         { return r.chats }
func (r *gormRepositories) Notifications() notification.NotificationRepository { return r.notifications }
func (r *gormRepositories) Analytics() analytics.AnalyticsRepository           { return r.analytics }
func (r *gormRepositories) Schedules() schedule.ScheduleRepository             { return r.schedules }
func (r *gormRepositories) Team() team.MemberRepository                        { return r.team }
func (r *gormRepositories) Promotions() promotion.PromotionRepository          { return r.promotions }
