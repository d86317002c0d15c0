package booking

import (
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id             uuid.UUID
	customerID     uuid.UUID
	serviceID      uuid.UUID
	bookingDate    time.Time
	status         BookingStatus
	totalPrice     decimal.Decimal
	notes          string
	idempotencyKey *string
	cancelReason   string

	confirmedAt *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending Booking. totalPrice is the service price at
// this instant and never changes afterwards.
func NewBooking(
	customerID uuid.UUID,
	serviceID uuid.UUID,
	bookingDate time.Time,
	totalPrice decimal.Decimal,
	notes string,
	idempotencyKey *string,
	now time.Time,
) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if serviceID == uuid.Nil {
		return nil, domain.NewValidationError("service ID is required")
	}
	if bookingDate.IsZero() {
		return nil, domain.NewValidationError("booking date is required")
	}
	if IsBeforeJakartaToday(bookingDate, now) {
		return nil, domain.NewInvalidDateError("booking date is before today")
	}
	if !totalPrice.IsPositive() {
		return nil, domain.NewValidationError("total price must be positive")
	}
	if idempotencyKey != nil && *idempotencyKey == "" {
		idempotencyKey = nil
	}

	now = now.UTC()
	return &Booking{
		id:             uuid.New(),
		customerID:     customerID,
		serviceID:      serviceID,
		bookingDate:    bookingDate.UTC(),
		status:         StatusPending,
		totalPrice:     totalPrice,
		notes:          notes,
		idempotencyKey: idempotencyKey,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	customerID uuid.UUID,
	serviceID uuid.UUID,
	bookingDate time.Time,
	status BookingStatus,
	totalPrice decimal.Decimal,
	notes string,
	idempotencyKey *string,
	cancelReason string,
	confirmedAt *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		customerID:     customerID,
		serviceID:      serviceID,
		bookingDate:    bookingDate,
		status:         status,
		totalPrice:     totalPrice,
		notes:          notes,
		idempotencyKey: idempotencyKey,
		cancelReason:   cancelReason,
		confirmedAt:    confirmedAt,
		completedAt:    completedAt,
		cancelledAt:    cancelledAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// CustomerID returns the booking customer's user ID.
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }

// ServiceID returns the booked service.
func (b *Booking) ServiceID() uuid.UUID { return b.serviceID }

// BookingDate returns the appointment time.
func (b *Booking) BookingDate() time.Time { return b.bookingDate }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// TotalPrice returns the price snapshot taken at creation.
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }

func (b *Booking) Notes() string { return b.notes }

func (b *Booking) IdempotencyKey() *string { return b.idempotencyKey }

func (b *Booking) CancelReason() string { return b.cancelReason }

func (b *Booking) ConfirmedAt() *time.Time { return b.confirmedAt }

func (b *Booking) CompletedAt() *time.Time { return b.completedAt }

func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// ActorFor classifies userID relative to this booking. umkmID is the owner of
// the booked service.
func (b *Booking) ActorFor(userID, umkmID uuid.UUID) Actor {
	switch userID {
	case umkmID:
		return ActorUMKM
	case b.customerID:
		return ActorCustomer
	default:
		return ActorNone
	}
}

// Transition moves the booking to target. The edge is checked before the actor
// so that moves out of a terminal status always report an illegal transition.
func (b *Booking) Transition(target BookingStatus, actor Actor, now time.Time) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewIllegalTransitionError(string(b.status), string(target))
	}
	if !b.status.AllowsActor(target, actor) {
		return domain.NewForbiddenError("actor may not move booking from " + string(b.status) + " to " + string(target))
	}

	now = now.UTC()
	switch target {
	case StatusConfirmed:
		b.confirmedAt = &now
	case StatusCompleted:
		b.completedAt = &now
	case StatusCancelled:
		b.cancelledAt = &now
	}
	b.status = target
	b.updatedAt = now
	return nil
}

// Cancel transitions to cancelled and records the reason.
func (b *Booking) Cancel(actor Actor, reason string, now time.Time) error {
	if err := b.Transition(StatusCancelled, actor, now); err != nil {
		return err
	}
	b.cancelReason = reason
	return nil
}

// EnsureReviewable fails unless the booking is completed.
func (b *Booking) EnsureReviewable() error {
	if b.status != StatusCompleted {
		return domain.NewNotReviewableError("booking is " + string(b.status) + ", only completed bookings can be reviewed")
	}
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
}
