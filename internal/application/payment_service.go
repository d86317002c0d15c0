package application

import (
	"context"
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordPaymentRequest holds the data a customer submits to pay for a booking.
type RecordPaymentRequest struct {
	Method        string          `json:"method" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

// SetPaymentStatusRequest holds the UMKM's verification decision.
type SetPaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentDTO is the API response representation of a payment.
type PaymentDTO struct {
	ID            uuid.UUID       `json:"id"`
	BookingID     uuid.UUID       `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentResultDTO is returned by payment writes. Warning is set when the
// submitted amount disagreed with the booking's total price.
type PaymentResultDTO struct {
	Payment PaymentDTO               `json:"payment"`
	Booking BookingDTO               `json:"booking"`
	Warning *domain.IntegrityWarning `json:"warning,omitempty"`
}

// PaymentService reconciles payments with booking status.
type PaymentService struct {
	store     Store
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store Store, publisher EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// RecordPayment records the customer's payment and moves the booking to
// confirmed (cash) or pending_payment (any other method) in one transaction.
// The persisted amount is always the booking's total price.
func (s *PaymentService) RecordPayment(ctx context.Context, customerID, bookingID uuid.UUID, req RecordPaymentRequest) (*PaymentResultDTO, error) {
	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", req.Method))
	}

	var (
		bk       *bookingDomain.Booking
		svc      *catalog.Service
		p        *payment.Payment
		previous bookingDomain.BookingStatus
		warning  *domain.IntegrityWarning
	)
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		bk, err = repos.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.CustomerID() != customerID {
			return domain.NewForbiddenError("only the booking's customer can pay for it")
		}
		svc, err = repos.Services().FindByID(ctx, bk.ServiceID())
		if err != nil {
			return err
		}

		target := bookingDomain.StatusPendingPayment
		if method.IsCash() {
			target = bookingDomain.StatusConfirmed
		}
		previous = bk.Status()
		if err := bk.Transition(target, bookingDomain.ActorPayment, s.now()); err != nil {
			return err
		}

		if !req.Amount.Equal(bk.TotalPrice()) {
			warning = &domain.IntegrityWarning{
				Entity:    "Booking",
				EntityID:  bk.ID().String(),
				Field:     "total_price",
				Expected:  bk.TotalPrice().String(),
				Submitted: req.Amount.String(),
			}
		}

		p, err = payment.NewPayment(bk.ID(), method, bk.TotalPrice(), req.TransactionID, req.Notes, s.now())
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, p); err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings().Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	if warning != nil {
		s.logger.Warn("payment amount differs from booking total",
			zap.String("booking_id", bk.ID().String()),
			zap.String("expected", warning.Expected),
			zap.String("submitted", warning.Submitted),
		)
	}
	s.logger.Info("payment recorded",
		zap.String("payment_id", p.ID().String()),
		zap.String("booking_id", bk.ID().String()),
		zap.String("method", string(p.Method())),
		zap.String("booking_status", string(bk.Status())),
	)

	outbound := []outboundEvent{paymentEvent(events.PaymentRecorded, p, bk, svc, s.now())}
	if bk.Status() == bookingDomain.StatusConfirmed {
		outbound = append(outbound, bookingEvent(events.BookingConfirmed, bk, svc, previous, s.now()))
	}
	publishAll(ctx, s.publisher, s.logger, outbound)

	return &PaymentResultDTO{
		Payment: toPaymentDTO(p),
		Booking: toBookingDTO(bk),
		Warning: warning,
	}, nil
}

// SetPaymentStatus applies the owning UMKM's verification of a non-cash
// payment: completed confirms the booking, failed and refunded cancel it.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, umkmID, paymentID uuid.UUID, newStatus string) (*PaymentResultDTO, error) {
	target, err := payment.ParseStatus(newStatus)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var (
		p        *payment.Payment
		bk       *bookingDomain.Booking
		svc      *catalog.Service
		previous bookingDomain.BookingStatus
	)
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		p, err = repos.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		bk, err = repos.Bookings().FindByID(ctx, p.BookingID())
		if err != nil {
			return err
		}
		svc, err = repos.Services().FindByID(ctx, bk.ServiceID())
		if err != nil {
			return err
		}
		if !svc.IsOwnedBy(umkmID) {
			return domain.NewForbiddenError("only the owning UMKM can verify this payment")
		}
		if p.Method().IsCash() {
			return domain.NewValidationError("cash payments are settled when recorded")
		}

		if err := p.ChangeStatus(target, s.now()); err != nil {
			return err
		}

		previous = bk.Status()
		if err := applyPaymentOutcome(bk, target, s.now()); err != nil {
			return err
		}

		p.IncrementVersion()
		if err := repos.Payments().Update(ctx, p); err != nil {
			return err
		}
		if bk.Status() == previous {
			return nil
		}
		bk.IncrementVersion()
		return repos.Bookings().Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment status changed",
		zap.String("payment_id", p.ID().String()),
		zap.String("status", string(p.Status())),
		zap.String("booking_id", bk.ID().String()),
		zap.String("booking_status", string(bk.Status())),
	)

	outbound := []outboundEvent{paymentEvent(events.PaymentStatusChanged, p, bk, svc, s.now())}
	if bk.Status() != previous {
		outbound = append(outbound, bookingEvent(transitionEventType(previous, bk.Status()), bk, svc, previous, s.now()))
	}
	publishAll(ctx, s.publisher, s.logger, outbound)

	return &PaymentResultDTO{Payment: toPaymentDTO(p), Booking: toBookingDTO(bk)}, nil
}

// ListPayments returns a booking's payments to its customer or owning UMKM.
func (s *PaymentService) ListPayments(ctx context.Context, userID, bookingID uuid.UUID) ([]PaymentDTO, error) {
	repos := s.store.Repositories()
	bk, err := repos.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := ensureBookingVisible(ctx, repos, bk, userID); err != nil {
		return nil, err
	}

	payments, err := repos.Payments().FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, nil
}

// applyPaymentOutcome maps a payment status onto the booking. A refund of an
// already cancelled booking leaves it cancelled.
func applyPaymentOutcome(bk *bookingDomain.Booking, status payment.Status, now time.Time) error {
	switch status {
	case payment.StatusCompleted:
		return bk.Transition(bookingDomain.StatusConfirmed, bookingDomain.ActorPayment, now)
	case payment.StatusFailed:
		return bk.Cancel(bookingDomain.ActorPayment, "payment failed", now)
	case payment.StatusRefunded:
		if bk.Status() == bookingDomain.StatusCancelled {
			return nil
		}
		return bk.Cancel(bookingDomain.ActorPayment, "payment refunded", now)
	default:
		return domain.NewIllegalTransitionError("payment", string(status))
	}
}

func paymentEvent(eventType string, p *payment.Payment, bk *bookingDomain.Booking, svc *catalog.Service, now time.Time) outboundEvent {
	return outboundEvent{
		topic:     events.TopicPaymentEvents,
		eventType: eventType,
		subject:   p.ID().String(),
		data: events.PaymentEvent{
			PaymentID:  p.ID(),
			BookingID:  bk.ID(),
			CustomerID: bk.CustomerID(),
			UMKMID:     svc.UMKMID(),
			Method:     string(p.Method()),
			Status:     string(p.Status()),
			Amount:     p.Amount(),
			OccurredAt: now.UTC(),
		},
	}
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Amount:        p.Amount(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		Notes:         p.Notes(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
