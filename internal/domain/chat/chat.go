package chat

import (
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

const maxBodyLength = 2000

// Chat is the single conversation between a customer and an UMKM.
// LastMessage, LastMessageAt and UnreadCount are caches over the message log.
type Chat struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	UMKMID        uuid.UUID
	LastMessage   string
	LastMessageAt *time.Time
	UnreadCount   int64
	CreatedAt     time.Time
}

// NewChat creates an empty conversation.
func NewChat(customerID, umkmID uuid.UUID, now time.Time) *Chat {
	return &Chat{
		ID:         uuid.New(),
		CustomerID: customerID,
		UMKMID:     umkmID,
		CreatedAt:  now.UTC(),
	}
}

// SenderTypeOf returns which side of the chat userID is on.
func (c *Chat) SenderTypeOf(userID uuid.UUID) (auth.Role, bool) {
	switch userID {
	case c.CustomerID:
		return auth.RoleCustomer, true
	case c.UMKMID:
		return auth.RoleUMKM, true
	}
	return "", false
}

// IsParticipant reports whether userID is one of the two parties.
func (c *Chat) IsParticipant(userID uuid.UUID) bool {
	_, ok := c.SenderTypeOf(userID)
	return ok
}

// Message is one entry of a chat's log.
type Message struct {
	ID         uuid.UUID
	ChatID     uuid.UUID
	SenderID   uuid.UUID
	SenderType auth.Role
	Body       string
	IsRead     bool
	CreatedAt  time.Time
}

// NewMessage validates and creates an unread message.
func NewMessage(c *Chat, senderID uuid.UUID, body string, now time.Time) (*Message, error) {
	senderType, ok := c.SenderTypeOf(senderID)
	if !ok {
		return nil, domain.NewForbiddenError("sender is not part of this chat")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewValidationError("message body is required")
	}
	if len(body) > maxBodyLength {
		return nil, domain.NewValidationError("message body is too long")
	}
	return &Message{
		ID:         uuid.New(),
		ChatID:     c.ID,
		SenderID:   senderID,
		SenderType: senderType,
		Body:       body,
		CreatedAt:  now.UTC(),
	}, nil
}
