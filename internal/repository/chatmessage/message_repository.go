// File: internal/repository/chatmessage/message_repository.go
package chatmessage

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrMessageNotFound = errors.New("chat message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	if err := r.validateMessageInput(message); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message for page %s: %v", message.PageID, err)
		return errors.New("database error creating message")
	}
	return nil
}

func (r *gormMessageRepository) CreatePair(ctx context.Context, userMsg, assistantMsg *domain.ChatMessage) error {
	if err := r.validateMessageInput(userMsg); err != nil {
		return err
	}
	if err := r.validateMessageInput(assistantMsg); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(assistantMsg).Error
	})
	if err != nil {
		log.Printf("[MessageRepository] Transaction failed persisting exchange for page %s: %v", userMsg.PageID, err)
		return errors.New("database error persisting exchange")
	}
	return nil
}

func (r *gormMessageRepository) DeactivateFrom(ctx context.Context, pageID string, cutoff time.Time) (int64, error) {
	if pageID == "" {
		return 0, errors.New("invalid page ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("page_id = ? AND created_at >= ?", pageID, cutoff).
		Updates(map[string]any{"is_active": false, "edited_at": time.Now().UTC()})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deactivating messages for page %s: %v", pageID, result.Error)
		return 0, errors.New("database error deactivating messages")
	}
	return result.RowsAffected, nil
}

func (r *gormMessageRepository) FindActiveByPageID(ctx context.Context, pageID string) ([]domain.ChatMessage, error) {
	if pageID == "" {
		return nil, errors.New("invalid page ID")
	}

	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND is_active = ?", pageID, true).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching messages for page %s: %v", pageID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByPageID(ctx context.Context, pageID string) (int64, error) {
	if pageID == "" {
		return 0, errors.New("invalid page ID")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("page_id = ?", pageID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for page %s: %v", pageID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.ChatMessage) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.ID == "" {
		return errors.New("message ID is required")
	}
	if message.PageID == "" {
		return errors.New("page ID is required")
	}
	if message.Role != domain.RoleUser && message.Role != domain.RoleAssistant {
		return errors.New("invalid message role")
	}
	return nil
}
