package application_test

import (
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotificationInbox(t *testing.T) {
	f := newFixture(t)
	svc := application.NewNotificationService(f.store, zap.NewNop())
	userID := f.user(auth.RoleCustomer)
	other := f.user(auth.RoleCustomer)
	ref := uuid.New()

	first := notification.New(userID, notification.TypeBookingConfirmed, map[string]string{
		notification.KeyServiceName: "Cuci Sofa",
	}, ref, "evt-1")
	require.NoError(t, svc.Notify(f.ctx, first))
	// Redelivery of the same event.
	require.NoError(t, svc.Notify(f.ctx, notification.New(userID, notification.TypeBookingConfirmed, nil, ref, "evt-1")))
	require.NoError(t, svc.Notify(f.ctx, notification.New(userID, notification.TypeBookingCompleted, nil, ref, "evt-2")))

	list, err := svc.List(f.ctx, userID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, int64(2), list.Unread)
	for _, n := range list.Items {
		if n.ID == first.ID {
			assert.Equal(t, "Cuci Sofa", n.Data[notification.KeyServiceName])
		}
	}

	require.NoError(t, svc.MarkRead(f.ctx, userID, first.ID))
	assert.True(t, errors.Is(svc.MarkRead(f.ctx, other, first.ID), domain.ErrNotFound))
	list, err = svc.List(f.ctx, userID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Unread)

	marked, err := svc.MarkAllRead(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	assert.True(t, errors.Is(svc.Delete(f.ctx, other, first.ID), domain.ErrNotFound))
	require.NoError(t, svc.Delete(f.ctx, userID, first.ID))

	cleared, err := svc.Clear(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
}
