package payment

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

func TestNewPaymentInitialStatus(t *testing.T) {
	now := time.Now()

	cash, err := NewPayment(uuid.New(), MethodCash, decimal.NewFromInt(50000), "", "", now)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, cash.Status())

	transfer, err := NewPayment(uuid.New(), MethodBankTransfer, decimal.NewFromInt(50000), "TRX-1", "", now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, transfer.Status())

	_, err = NewPayment(uuid.New(), Method("crypto"), decimal.NewFromInt(1), "", "", now)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestChangeStatus(t *testing.T) {
	now := time.Now()
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusRefunded, false},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusFailed, false},
		{StatusCompleted, StatusPending, false},
		{StatusFailed, StatusCompleted, false},
		{StatusRefunded, StatusCompleted, false},
	}

	for _, tc := range cases {
		p := Reconstruct(uuid.New(), uuid.New(), decimal.NewFromInt(1), MethodEWallet, tc.from, "", "", 1, now, now)
		err := p.ChangeStatus(tc.to, now)
		if tc.allowed {
			assert.NoError(t, err, "%s->%s", tc.from, tc.to)
			assert.Equal(t, tc.to, p.Status())
		} else {
			assert.True(t, errors.Is(err, domain.ErrIllegalTransition), "%s->%s", tc.from, tc.to)
			assert.Equal(t, tc.from, p.Status())
		}
	}
}
