package application

import (
	"context"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationListDTO is a page of notifications with the unread total.
type NotificationListDTO struct {
	domain.PaginatedResult[*notification.Notification]
	Unread int64 `json:"unread"`
}

// NotificationService manages a user's in-app notifications.
type NotificationService struct {
	store  Store
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store Store, logger *zap.Logger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// Notify stores a notification. A redelivered event with the same source
// event ID is ignored.
func (s *NotificationService) Notify(ctx context.Context, n *notification.Notification) error {
	if err := s.store.Repositories().Notifications().Save(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("notification stored",
		zap.String("user_id", n.UserID.String()),
		zap.String("type", string(n.Type)),
	)
	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationListDTO, error) {
	repos := s.store.Repositories()
	items, total, err := repos.Notifications().FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := repos.Notifications().CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationListDTO{
		PaginatedResult: domain.NewPaginatedResult(items, total, page, limit),
		Unread:          unread,
	}, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.Repositories().Notifications().MarkRead(ctx, userID, id)
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.store.Repositories().Notifications().MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.Repositories().Notifications().Delete(ctx, userID, id)
}

// Clear removes every notification of the user.
func (s *NotificationService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.Repositories().Notifications().DeleteAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("notifications cleared", zap.String("user_id", userID.String()), zap.Int64("count", n))
	return n, nil
}
