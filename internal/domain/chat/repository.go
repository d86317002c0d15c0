package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatRepository defines persistence operations for chats and messages.
type ChatRepository interface {
	// InsertIfAbsent creates the chat unless the (customer, umkm) pair exists.
	InsertIfAbsent(ctx context.Context, chat *Chat) error
	FindByPair(ctx context.Context, customerID, umkmID uuid.UUID) (*Chat, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Chat, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Chat, error)

	AppendMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, chatID uuid.UUID, page, limit int) ([]*Message, int64, error)
	// MarkRead flags every message in chatID not sent by readerID as read.
	MarkRead(ctx context.Context, chatID, readerID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, chatID uuid.UUID) (int64, error)
	// UpdateCaches writes last_message, last_message_at and unread_count.
	UpdateCaches(ctx context.Context, chatID uuid.UUID, lastMessage string, lastMessageAt *time.Time, unread int64) error
}
