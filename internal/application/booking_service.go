package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/domain/schedule"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	BookingDate    string    `json:"booking_date" binding:"required"`
	Notes          string    `json:"notes"`
	IdempotencyKey string    `json:"idempotency_key"`
}

// TransitionRequest asks for a booking to move to Status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	ServiceID    uuid.UUID       `json:"service_id"`
	BookingDate  time.Time       `json:"booking_date"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Notes        string          `json:"notes,omitempty"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	store     Store
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(store Store, publisher EventPublisher, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for date checks and timestamps.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBooking creates a pending booking priced at the service's current
// price. A replay with an idempotency key the customer already used returns
// the original booking. Once an UMKM publishes opening slots, only their days
// can be booked.
func (s *BookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		if existing, err := s.findByIdempotencyKey(ctx, customerID, key); err != nil || existing != nil {
			return existing, err
		}
	}

	bookingDate, err := bookingDomain.ParseBookingDate(req.BookingDate)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var (
		bk  *bookingDomain.Booking
		svc *catalog.Service
	)
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		customer, err := repos.Users().FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if !customer.IsCustomer() {
			return domain.NewForbiddenError("only customers can create bookings")
		}

		svc, err = repos.Services().FindByID(ctx, req.ServiceID)
		if err != nil {
			return err
		}
		owner, err := repos.Users().FindByID(ctx, svc.UMKMID())
		if err != nil || !owner.IsUMKM() {
			return domain.NewNotFoundError("Service", req.ServiceID.String())
		}

		bk, err = bookingDomain.NewBooking(customerID, svc.ID(), bookingDate, svc.Price(), req.Notes, &key, s.now())
		if err != nil {
			return err
		}

		slots, err := repos.Schedules().FindByUMKMID(ctx, svc.UMKMID())
		if err != nil {
			return err
		}
		if !schedule.OpenOn(slots, bookingDate.In(bookingDomain.Jakarta).Weekday()) {
			return domain.NewInvalidDateError("the UMKM is closed on that day")
		}
		return repos.Bookings().Save(ctx, bk)
	})
	if err != nil {
		// A concurrent submission with the same key won the insert.
		if key != "" && errors.Is(err, domain.ErrConflict) {
			if existing, findErr := s.findByIdempotencyKey(ctx, customerID, key); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("customer_id", customerID.String()),
		zap.String("service_id", svc.ID().String()),
	)
	publishAll(ctx, s.publisher, s.logger, []outboundEvent{
		bookingEvent(events.BookingCreated, bk, svc, "", s.now()),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// Transition moves a booking to target on behalf of actorID. Payment-driven
// edges are refused here; they are fired only by PaymentService.
func (s *BookingService) Transition(ctx context.Context, bookingID, actorID uuid.UUID, target bookingDomain.BookingStatus, reason string) (*BookingDTO, error) {
	var (
		bk       *bookingDomain.Booking
		svc      *catalog.Service
		previous bookingDomain.BookingStatus
		actor    bookingDomain.Actor
	)
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		bk, err = repos.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		svc, err = repos.Services().FindByID(ctx, bk.ServiceID())
		if err != nil {
			return err
		}

		previous = bk.Status()
		actor = bk.ActorFor(actorID, svc.UMKMID())
		if target == bookingDomain.StatusCancelled {
			err = bk.Cancel(actor, reason, s.now())
		} else {
			err = bk.Transition(target, actor, s.now())
		}
		if err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings().Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", bk.ID().String()),
		zap.String("from", string(previous)),
		zap.String("to", string(bk.Status())),
		zap.String("actor", string(actor)),
	)
	publishAll(ctx, s.publisher, s.logger, []outboundEvent{
		bookingEvent(transitionEventType(previous, bk.Status()), bk, svc, previous, s.now()),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking accepts a pending booking (owning UMKM).
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, umkmID uuid.UUID) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, umkmID, bookingDomain.StatusConfirmed, "")
}

// RejectBooking cancels a pending booking (owning UMKM).
func (s *BookingService) RejectBooking(ctx context.Context, bookingID, umkmID uuid.UUID, reason string) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, umkmID, bookingDomain.StatusCancelled, reason)
}

// CompleteBooking marks a confirmed booking as done (owning UMKM).
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID, umkmID uuid.UUID) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, umkmID, bookingDomain.StatusCompleted, "")
}

// CancelBooking cancels a booking on behalf of its customer or owning UMKM.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, actorID, bookingDomain.StatusCancelled, reason)
}

// UpdateStatus applies a client-requested transition given by name.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, req TransitionRequest) (*BookingDTO, error) {
	target, err := bookingDomain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return s.Transition(ctx, bookingID, actorID, target, req.Reason)
}

// GetBooking retrieves a booking visible to userID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*BookingDTO, error) {
	repos := s.store.Repositories()
	bk, err := repos.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := ensureBookingVisible(ctx, repos, bk, userID); err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetCustomerBookings retrieves a customer's bookings, optionally by status.
func (s *BookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, status string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	bookings, total, err := s.store.Repositories().Bookings().FindByCustomerID(ctx, customerID, st, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetUMKMBookings retrieves bookings for every service an UMKM owns.
func (s *BookingService) GetUMKMBookings(ctx context.Context, umkmID uuid.UUID, status string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	bookings, total, err := s.store.Repositories().Bookings().FindByUMKMID(ctx, umkmID, st, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Helpers ---

func (s *BookingService) findByIdempotencyKey(ctx context.Context, customerID uuid.UUID, key string) (*BookingDTO, error) {
	bk, err := s.store.Repositories().Bookings().FindByIdempotencyKey(ctx, customerID, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("idempotent booking replay",
		zap.String("booking_id", bk.ID().String()),
		zap.String("customer_id", customerID.String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// ensureBookingVisible allows the booking's customer and the UMKM owning its service.
func ensureBookingVisible(ctx context.Context, repos Repositories, bk *bookingDomain.Booking, userID uuid.UUID) error {
	if bk.CustomerID() == userID {
		return nil
	}
	svc, err := repos.Services().FindByID(ctx, bk.ServiceID())
	if err != nil {
		return err
	}
	if svc.IsOwnedBy(userID) {
		return nil
	}
	return domain.NewForbiddenError("booking does not belong to this user")
}

func parseStatusFilter(status string) (bookingDomain.BookingStatus, error) {
	if status == "" {
		return "", nil
	}
	st, err := bookingDomain.ParseBookingStatus(status)
	if err != nil {
		return "", domain.NewValidationError(err.Error())
	}
	return st, nil
}

func transitionEventType(from, to bookingDomain.BookingStatus) string {
	switch to {
	case bookingDomain.StatusConfirmed:
		return events.BookingConfirmed
	case bookingDomain.StatusCompleted:
		return events.BookingCompleted
	case bookingDomain.StatusCancelled:
		if from == bookingDomain.StatusPending {
			return events.BookingRejected
		}
		return events.BookingCancelled
	default:
		return fmt.Sprintf("jasain.booking.%s", to)
	}
}

func bookingEvent(eventType string, bk *bookingDomain.Booking, svc *catalog.Service, previous bookingDomain.BookingStatus, now time.Time) outboundEvent {
	return outboundEvent{
		topic:     events.TopicBookingEvents,
		eventType: eventType,
		subject:   bk.ID().String(),
		data: events.BookingEvent{
			BookingID:      bk.ID(),
			CustomerID:     bk.CustomerID(),
			UMKMID:         svc.UMKMID(),
			ServiceID:      svc.ID(),
			ServiceName:    svc.Name(),
			Status:         string(bk.Status()),
			PreviousStatus: string(previous),
			TotalPrice:     bk.TotalPrice(),
			BookingDate:    bk.BookingDate(),
			Reason:         bk.CancelReason(),
			OccurredAt:     now.UTC(),
		},
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:           bk.ID(),
		CustomerID:   bk.CustomerID(),
		ServiceID:    bk.ServiceID(),
		BookingDate:  bk.BookingDate(),
		Status:       string(bk.Status()),
		TotalPrice:   bk.TotalPrice(),
		Notes:        bk.Notes(),
		CancelReason: bk.CancelReason(),
		ConfirmedAt:  bk.ConfirmedAt(),
		CompletedAt:  bk.CompletedAt(),
		CancelledAt:  bk.CancelledAt(),
		Version:      bk.Version(),
		CreatedAt:    bk.CreatedAt(),
		UpdatedAt:    bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
