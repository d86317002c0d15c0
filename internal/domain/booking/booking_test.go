package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-10 09:00 WIB
var fixedNow = time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *Booking {
	t.Helper()
	b, err := NewBooking(uuid.New(), uuid.New(), fixedNow.Add(24*time.Hour), decimal.NewFromInt(50000), "", nil, fixedNow)
	require.NoError(t, err)
	return b
}

func withStatus(b *Booking, s BookingStatus) *Booking {
	return ReconstructBooking(b.ID(), b.CustomerID(), b.ServiceID(), b.BookingDate(), s, b.TotalPrice(),
		b.Notes(), b.IdempotencyKey(), b.CancelReason(), nil, nil, nil, b.Version(), b.CreatedAt(), b.UpdatedAt())
}

func TestNewBookingDateRule(t *testing.T) {
	price := decimal.NewFromInt(25000)

	t.Run("yesterday is rejected", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), fixedNow.AddDate(0, 0, -1), price, "", nil, fixedNow)
		assert.True(t, errors.Is(err, domain.ErrInvalidDate))
	})

	t.Run("earlier today is accepted", func(t *testing.T) {
		// 00:30 WIB on the same Jakarta day, which is still the previous UTC day.
		earlier := time.Date(2026, 3, 9, 17, 30, 0, 0, time.UTC)
		b, err := NewBooking(uuid.New(), uuid.New(), earlier, price, "", nil, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, b.Status())
	})

	t.Run("late UTC evening is already tomorrow in Jakarta", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC) // 01:00 WIB on the 11th
		sameUTCDay := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
		_, err := NewBooking(uuid.New(), uuid.New(), sameUTCDay, price, "", nil, now)
		assert.True(t, errors.Is(err, domain.ErrInvalidDate))
	})

	t.Run("non-positive price is invalid", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), fixedNow, decimal.Zero, "", nil, fixedNow)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("empty idempotency key is dropped", func(t *testing.T) {
		empty := ""
		b, err := NewBooking(uuid.New(), uuid.New(), fixedNow, price, "", &empty, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, b.IdempotencyKey())
	})
}

func TestTransitionTableIsExhaustive(t *testing.T) {
	actors := []Actor{ActorUMKM, ActorCustomer, ActorPayment, ActorNone}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			for _, actor := range actors {
				b := withStatus(newPending(t), from)
				err := b.Transition(to, actor, fixedNow)

				allowed, inTable := validTransitions[edge{from, to}]
				switch {
				case !inTable:
					assert.True(t, errors.Is(err, domain.ErrIllegalTransition), "%s->%s by %q", from, to, actor)
					assert.Equal(t, from, b.Status())
				case !containsActor(allowed, actor):
					assert.True(t, errors.Is(err, domain.ErrForbidden), "%s->%s by %q", from, to, actor)
					assert.Equal(t, from, b.Status())
				default:
					assert.NoError(t, err, "%s->%s by %q", from, to, actor)
					assert.Equal(t, to, b.Status())
				}
			}
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusPendingPayment.IsTerminal())
}

func TestUserEdges(t *testing.T) {
	b := newPending(t)
	require.NoError(t, b.Transition(StatusConfirmed, ActorUMKM, fixedNow))
	assert.NotNil(t, b.ConfirmedAt())

	require.NoError(t, b.Cancel(ActorCustomer, "berhalangan", fixedNow))
	assert.Equal(t, StatusCancelled, b.Status())
	assert.Equal(t, "berhalangan", b.CancelReason())
	assert.NotNil(t, b.CancelledAt())
}

func TestCustomerCannotCancelPending(t *testing.T) {
	b := newPending(t)
	err := b.Cancel(ActorCustomer, "", fixedNow)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "", b.CancelReason())
}

func TestPaymentOnlyEdgesForbiddenToUsers(t *testing.T) {
	b := newPending(t)
	err := b.Transition(StatusPendingPayment, ActorUMKM, fixedNow)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	pp := withStatus(newPending(t), StatusPendingPayment)
	err = pp.Transition(StatusConfirmed, ActorUMKM, fixedNow)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestEnsureReviewable(t *testing.T) {
	b := newPending(t)
	assert.True(t, errors.Is(b.EnsureReviewable(), domain.ErrNotReviewable))
	assert.NoError(t, withStatus(b, StatusCompleted).EnsureReviewable())
}

func TestActorFor(t *testing.T) {
	b := newPending(t)
	umkm := uuid.New()
	assert.Equal(t, ActorUMKM, b.ActorFor(umkm, umkm))
	assert.Equal(t, ActorCustomer, b.ActorFor(b.CustomerID(), umkm))
	assert.Equal(t, ActorNone, b.ActorFor(uuid.New(), umkm))
}

func TestParseBookingDate(t *testing.T) {
	d, err := ParseBookingDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC), d.UTC())

	d, err = ParseBookingDate("2026-03-10T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hour())

	_, err = ParseBookingDate("10/03/2026")
	assert.Error(t, err)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("pending_payment")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingPayment, s)

	_, err = ParseBookingStatus("accepted")
	assert.Error(t, err)
}

func containsActor(list []Actor, a Actor) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
