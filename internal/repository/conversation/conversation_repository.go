// File: internal/repository/conversation/conversation_repository.go
package conversation

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) SearchOwned(ctx context.Context, driveID, userID, query string, limit int) ([]domain.AssistantConversation, error) {
	if driveID == "" || userID == "" {
		return nil, errors.New("invalid drive or user ID")
	}
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	tx := r.db.WithContext(ctx).
		Where("drive_id = ? AND user_id = ?", driveID, userID)
	if query != "" {
		tx = tx.Where("title LIKE ?", "%"+query+"%")
	}

	var conversations []domain.AssistantConversation
	if err := tx.Order("updated_at desc").Limit(limit).Find(&conversations).Error; err != nil {
		log.Printf("[ConversationRepository] Database error searching conversations for user %s: %v", userID, err)
		return nil, errors.New("database error searching conversations")
	}
	return conversations, nil
}
