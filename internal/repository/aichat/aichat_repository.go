// File: internal/repository/aichat/aichat_repository.go
package aichat

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrConfigNotFound = errors.New("ai chat configuration not found")

type gormAiChatRepository struct {
	db *gorm.DB
}

func NewAiChatRepository(db *gorm.DB) AiChatRepository {
	return &gormAiChatRepository{db: db}
}

func (r *gormAiChatRepository) FindByPageID(ctx context.Context, pageID string) (*domain.AiChat, error) {
	if pageID == "" {
		return nil, errors.New("invalid page ID")
	}

	var chat domain.AiChat
	err := r.db.WithContext(ctx).First(&chat, "page_id = ?", pageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		log.Printf("[AiChatRepository] Database error fetching config for page %s: %v", pageID, err)
		return nil, errors.New("database error fetching chat configuration")
	}
	return &chat, nil
}
