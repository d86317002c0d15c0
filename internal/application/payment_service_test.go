package application_test

import (
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/events"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pay(method string, amount int64) application.RecordPaymentRequest {
	return application.RecordPaymentRequest{Method: method, Amount: decimal.NewFromInt(amount)}
}

func TestRecordPaymentCashConfirms(t *testing.T) {
	f := newFixture(t)
	_, customerID, serviceID := f.parties(80000)
	bk := f.booking(customerID, serviceID)
	f.publisher.reset()

	res, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("cash", 80000))
	require.NoError(t, err)

	assert.Nil(t, res.Warning)
	assert.Equal(t, "completed", res.Payment.Status)
	assert.Equal(t, "confirmed", res.Booking.Status)
	assert.Equal(t, "confirmed", f.bookingRow(bk.ID).Status)
	assert.NotNil(t, f.bookingRow(bk.ID).ConfirmedAt)
	assert.Equal(t, []string{events.PaymentRecorded, events.BookingConfirmed}, f.publisher.types())
}

func TestRecordPaymentNonCashAwaitsVerification(t *testing.T) {
	for _, method := range []string{"bank_transfer", "e_wallet", "credit_card"} {
		t.Run(method, func(t *testing.T) {
			f := newFixture(t)
			_, customerID, serviceID := f.parties(80000)
			bk := f.booking(customerID, serviceID)
			f.publisher.reset()

			res, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay(method, 80000))
			require.NoError(t, err)

			assert.Equal(t, "pending", res.Payment.Status)
			assert.Equal(t, "pending_payment", f.bookingRow(bk.ID).Status)
			assert.Equal(t, []string{events.PaymentRecorded}, f.publisher.types())
		})
	}
}

func TestRecordPaymentAmountMismatchKeepsTotalPrice(t *testing.T) {
	f := newFixture(t)
	_, customerID, serviceID := f.parties(120000)
	bk := f.booking(customerID, serviceID)

	res, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("bank_transfer", 100000))
	require.NoError(t, err)

	require.NotNil(t, res.Warning)
	assert.Equal(t, "total_price", res.Warning.Field)
	assert.True(t, decimal.RequireFromString(res.Warning.Expected).Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, "100000", res.Warning.Submitted)

	var stored repository.PaymentModel
	require.NoError(t, f.db.Where("booking_id = ?", bk.ID).First(&stored).Error)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(120000)), "stored %s", stored.Amount)
}

func TestRecordPaymentRejections(t *testing.T) {
	t.Run("unknown method", func(t *testing.T) {
		f := newFixture(t)
		_, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)

		_, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("barter", 50000))
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := newFixture(t)
		_, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)

		_, err := f.payments.RecordPayment(f.ctx, f.user(auth.RoleCustomer), bk.ID, pay("cash", 50000))
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})

	for _, from := range []bookingDomain.BookingStatus{
		bookingDomain.StatusConfirmed,
		bookingDomain.StatusPendingPayment,
		bookingDomain.StatusCompleted,
		bookingDomain.StatusCancelled,
	} {
		t.Run("booking "+string(from), func(t *testing.T) {
			f := newFixture(t)
			_, customerID, serviceID := f.parties(50000)
			bk := f.booking(customerID, serviceID)
			f.forceStatus(bk.ID, from)

			_, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("bank_transfer", 50000))
			assert.True(t, errors.Is(err, domain.ErrIllegalTransition), "got %v", err)
			assert.Zero(t, f.count(&repository.PaymentModel{}, "booking_id = ?", bk.ID))
			assert.Equal(t, string(from), f.bookingRow(bk.ID).Status)
		})
	}
}

func TestRecordPaymentIsAtomic(t *testing.T) {
	f := newFixture(t)
	_, customerID, serviceID := f.parties(50000)
	bk := f.booking(customerID, serviceID)
	f.publisher.reset()
	f.failUpdatesOn("bookings")

	_, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("cash", 50000))
	require.Error(t, err)

	assert.Zero(t, f.count(&repository.PaymentModel{}, "booking_id = ?", bk.ID))
	assert.Equal(t, "pending", f.bookingRow(bk.ID).Status)
	assert.Empty(t, f.publisher.types())
}

// transferPayment records a pending bank transfer and returns its ID.
func transferPayment(t *testing.T, f *fixture, customerID, bookingID uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := f.payments.RecordPayment(f.ctx, customerID, bookingID, pay("bank_transfer", 50000))
	require.NoError(t, err)
	return res.Payment.ID
}

func TestSetPaymentStatusOutcomes(t *testing.T) {
	tests := []struct {
		name          string
		steps         []string
		wantPayment   string
		wantBooking   string
		wantReason    string
		wantLastEvent string
	}{
		{"verified", []string{"completed"}, "completed", "confirmed", "", events.BookingConfirmed},
		{"failed", []string{"failed"}, "failed", "cancelled", "payment failed", events.BookingCancelled},
		{"refunded after verification", []string{"completed", "refunded"}, "refunded", "cancelled", "payment refunded", events.BookingCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			umkmID, customerID, serviceID := f.parties(50000)
			bk := f.booking(customerID, serviceID)
			paymentID := transferPayment(t, f, customerID, bk.ID)

			var res *application.PaymentResultDTO
			for _, step := range tt.steps {
				var err error
				res, err = f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, step)
				require.NoError(t, err, step)
			}

			assert.Equal(t, tt.wantPayment, res.Payment.Status)
			row := f.bookingRow(bk.ID)
			assert.Equal(t, tt.wantBooking, row.Status)
			assert.Equal(t, tt.wantReason, row.CancelReason)

			types := f.publisher.types()
			assert.Equal(t, tt.wantLastEvent, types[len(types)-1])
		})
	}
}

func TestSetPaymentStatusIsAtomic(t *testing.T) {
	for _, status := range []string{"completed", "failed"} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			umkmID, customerID, serviceID := f.parties(50000)
			bk := f.booking(customerID, serviceID)
			paymentID := transferPayment(t, f, customerID, bk.ID)
			f.publisher.reset()
			f.failUpdatesOn("bookings")

			_, err := f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, status)
			require.Error(t, err)

			var p repository.PaymentModel
			require.NoError(t, f.db.Where("id = ?", paymentID).First(&p).Error)
			assert.Equal(t, "pending", p.Status)
			assert.Equal(t, int64(1), p.Version)
			assert.Equal(t, "pending_payment", f.bookingRow(bk.ID).Status)
			assert.Empty(t, f.publisher.types())
		})
	}
}

func TestSetPaymentStatusRejections(t *testing.T) {
	t.Run("cash payment", func(t *testing.T) {
		f := newFixture(t)
		umkmID, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)
		res, err := f.payments.RecordPayment(f.ctx, customerID, bk.ID, pay("cash", 50000))
		require.NoError(t, err)

		_, err = f.payments.SetPaymentStatus(f.ctx, umkmID, res.Payment.ID, "refunded")
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("other UMKM", func(t *testing.T) {
		f := newFixture(t)
		_, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)
		paymentID := transferPayment(t, f, customerID, bk.ID)

		_, err := f.payments.SetPaymentStatus(f.ctx, f.user(auth.RoleUMKM), paymentID, "completed")
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		assert.Equal(t, "pending_payment", f.bookingRow(bk.ID).Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		umkmID, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)
		paymentID := transferPayment(t, f, customerID, bk.ID)

		_, err := f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, "lost")
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("refund after completion", func(t *testing.T) {
		f := newFixture(t)
		umkmID, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)
		paymentID := transferPayment(t, f, customerID, bk.ID)
		_, err := f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, "completed")
		require.NoError(t, err)
		_, err = f.bookings.CompleteBooking(f.ctx, bk.ID, umkmID)
		require.NoError(t, err)

		_, err = f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, "refunded")
		assert.True(t, errors.Is(err, domain.ErrIllegalTransition), "got %v", err)

		var stored repository.PaymentModel
		require.NoError(t, f.db.Where("id = ?", paymentID).First(&stored).Error)
		assert.Equal(t, "completed", stored.Status)
	})

	t.Run("failed is final", func(t *testing.T) {
		f := newFixture(t)
		umkmID, customerID, serviceID := f.parties(50000)
		bk := f.booking(customerID, serviceID)
		paymentID := transferPayment(t, f, customerID, bk.ID)
		_, err := f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, "failed")
		require.NoError(t, err)

		_, err = f.payments.SetPaymentStatus(f.ctx, umkmID, paymentID, "completed")
		assert.True(t, errors.Is(err, domain.ErrIllegalTransition))
	})
}

func TestListPaymentsVisibility(t *testing.T) {
	f := newFixture(t)
	umkmID, customerID, serviceID := f.parties(50000)
	bk := f.booking(customerID, serviceID)
	transferPayment(t, f, customerID, bk.ID)

	for _, viewer := range []uuid.UUID{customerID, umkmID} {
		list, err := f.payments.ListPayments(f.ctx, viewer, bk.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}

	_, err := f.payments.ListPayments(f.ctx, f.user(auth.RoleCustomer), bk.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
