package application

import (
	"context"

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
)

// Repositories groups every repository bound to one database handle. Inside
// WithinTransaction they all share the transaction.
type Repositories interface {
	Users() user.UserRepository
	Services() catalog.ServiceRepository
	Bookings() bookingDomain.BookingRepository
	Payments() payment.PaymentRepository
	Proofs() proof.ProofRepository
	Reviews() review.ReviewRepository
	Favorites() favorite.FavoriteRepository
	Chats() chat.ChatRepository
	Notifications() notification.NotificationRepository
	Analytics() analytics.AnalyticsRepository
	Schedules() schedule.ScheduleRepository
	Team() team.MemberRepository
	Promotions() promotion.PromotionRepository
}

// Store is the data store port. WithinTransaction commits when fn returns nil
// and rolls back on error or panic, so no partial write escapes a failed
// operation.
type Store interface {
	Repositories() Repositories
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
