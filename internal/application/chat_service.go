package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/chat"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageRequest holds a new chat message.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ChatDTO is the API response representation of a chat.
type ChatDTO struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	UMKMID        uuid.UUID  `json:"umkm_id"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int64      `json:"unread_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MessageDTO is the API response representation of a chat message.
type MessageDTO struct {
	ID         uuid.UUID `json:"id"`
	ChatID     uuid.UUID `json:"chat_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderType string    `json:"sender_type"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatService handles customer-UMKM conversations. The chat row's caches are
// written through whenever the message log changes.
type ChatService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewChatService creates a new ChatService.
func NewChatService(store Store, logger *zap.Logger) *ChatService {
	return &ChatService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

// GetOrCreateChat returns the pair's chat, creating it on first contact.
func (s *ChatService) GetOrCreateChat(ctx context.Context, customerID, umkmID uuid.UUID) (*ChatDTO, error) {
	var c *chat.Chat
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		if err := ensureUMKM(ctx, repos, umkmID); err != nil {
			return err
		}
		if err := repos.Chats().InsertIfAbsent(ctx, chat.NewChat(customerID, umkmID, s.now())); err != nil {
			return err
		}
		var err error
		c, err = repos.Chats().FindByPair(ctx, customerID, umkmID)
		return err
	})
	if err != nil {
		return nil, err
	}
	result := toChatDTO(c)
	return &result, nil
}

// SendMessage appends to the log and refreshes the chat caches.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, body string) (*MessageDTO, error) {
	var msg *chat.Message
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		c, err := repos.Chats().FindByID(ctx, chatID)
		if err != nil {
			return err
		}
		msg, err = chat.NewMessage(c, senderID, body, s.now())
		if err != nil {
			return err
		}
		if err := repos.Chats().AppendMessage(ctx, msg); err != nil {
			return err
		}
		unread, err := repos.Chats().CountUnread(ctx, chatID)
		if err != nil {
			return err
		}
		sentAt := msg.CreatedAt
		return repos.Chats().UpdateCaches(ctx, chatID, msg.Body, &sentAt, unread)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("chat message sent",
		zap.String("chat_id", chatID.String()),
		zap.String("sender_id", senderID.String()),
	)
	result := toMessageDTO(msg)
	return &result, nil
}

// MarkRead flags the other side's messages as read and recomputes the
// chat's unread count from the log.
func (s *ChatService) MarkRead(ctx context.Context, chatID, readerID uuid.UUID) (int64, error) {
	var marked int64
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		c, err := repos.Chats().FindByID(ctx, chatID)
		if err != nil {
			return err
		}
		if !c.IsParticipant(readerID) {
			return domain.NewForbiddenError("reader is not part of this chat")
		}
		marked, err = repos.Chats().MarkRead(ctx, chatID, readerID)
		if err != nil {
			return err
		}
		unread, err := repos.Chats().CountUnread(ctx, chatID)
		if err != nil {
			return err
		}
		return repos.Chats().UpdateCaches(ctx, chatID, c.LastMessage, c.LastMessageAt, unread)
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

// ListChats returns the user's chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]ChatDTO, error) {
	chats, err := s.store.Repositories().Chats().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ChatDTO, len(chats))
	for i, c := range chats {
		dtos[i] = toChatDTO(c)
	}
	return dtos, nil
}

// ListMessages returns a page of a chat's log to one of its participants.
func (s *ChatService) ListMessages(ctx context.Context, chatID, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[MessageDTO], error) {
	repos := s.store.Repositories()
	c, err := repos.Chats().FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !c.IsParticipant(userID) {
		return nil, domain.NewForbiddenError("user is not part of this chat")
	}

	msgs, total, err := repos.Chats().ListMessages(ctx, chatID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = toMessageDTO(m)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func toChatDTO(c *chat.Chat) ChatDTO {
	return ChatDTO{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		UMKMID:        c.UMKMID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
		CreatedAt:     c.CreatedAt,
	}
}

func toMessageDTO(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		SenderType: string(m.SenderType),
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
