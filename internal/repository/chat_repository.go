package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/chat"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// InsertIfAbsent relies on idx_chats_pair so two racing creators end up
// sharing one row.
func (r *GormChatRepository) InsertIfAbsent(ctx context.Context, c *chat.Chat) error {
	model := toChatModel(c)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	return nil
}

func (r *GormChatRepository) FindByPair(ctx context.Context, customerID, umkmID uuid.UUID) (*chat.Chat, error) {
	var model ChatModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND umkm_id = ?", customerID, umkmID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Chat", customerID.String()+"/"+umkmID.String())
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return toChatDomain(&model), nil
}

func (r *GormChatRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Chat, error) {
	var model ChatModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Chat", id.String())
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return toChatDomain(&model), nil
}

// FindByUserID lists chats on either side, most recently active first.
func (r *GormChatRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*chat.Chat, error) {
	var models []ChatModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? OR umkm_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	chats := make([]*chat.Chat, len(models))
	for i := range models {
		chats[i] = toChatDomain(&models[i])
	}
	return chats, nil
}

func (r *GormChatRepository) AppendMessage(ctx context.Context, msg *chat.Message) error {
	model := MessageModel{
		ID:         msg.ID,
		ChatID:     msg.ChatID,
		SenderID:   msg.SenderID,
		SenderType: string(msg.SenderType),
		Body:       msg.Body,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListMessages returns a page of the log, oldest first.
func (r *GormChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID, page, limit int) ([]*chat.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&MessageModel{}).Where("chat_id = ?", chatID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var models []MessageModel
	if err := q.Order("created_at ASC").Offset(domain.Offset(page, limit)).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs := make([]*chat.Message, len(models))
	for i, m := range models {
		msgs[i] = &chat.Message{
			ID:         m.ID,
			ChatID:     m.ChatID,
			SenderID:   m.SenderID,
			SenderType: auth.Role(m.SenderType),
			Body:       m.Body,
			IsRead:     m.IsRead,
			CreatedAt:  m.CreatedAt,
		}
	}
	return msgs, total, nil
}

func (r *GormChatRepository) MarkRead(ctx context.Context, chatID, readerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = ?", chatID, readerID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormChatRepository) CountUnread(ctx context.Context, chatID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MessageModel{}).
		Where("chat_id = ? AND is_read = ?", chatID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *GormChatRepository) UpdateCaches(ctx context.Context, chatID uuid.UUID, lastMessage string, lastMessageAt *time.Time, unread int64) error {
	result := r.db.WithContext(ctx).
		Model(&ChatModel{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message":    lastMessage,
			"last_message_at": lastMessageAt,
			"unread_count":    unread,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update chat caches: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Chat", chatID.String())
	}
	return nil
}

func toChatModel(c *chat.Chat) ChatModel {
	return ChatModel{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		UMKMID:        c.UMKMID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
		CreatedAt:     c.CreatedAt,
	}
}

func toChatDomain(m *ChatModel) *chat.Chat {
	return &chat.Chat{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		UMKMID:        m.UMKMID,
		LastMessage:   m.LastMessage,
		LastMessageAt: m.LastMessageAt,
		UnreadCount:   m.UnreadCount,
		CreatedAt:     m.CreatedAt,
	}
}
