// File: internal/repository/chatmessage/interface.go
package chatmessage

import (
	"context"
	"time"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// MessageRepository handles persisted chat messages for AI chat pages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	// CreatePair inserts the user and assistant messages of one exchange in
	// a single transaction. Either both rows exist afterwards or neither.
	CreatePair(ctx context.Context, userMsg, assistantMsg *domain.ChatMessage) error
	// DeactivateFrom soft-invalidates every message on the page created at
	// or after cutoff (inclusive), stamping edited_at. Returns the number of
	// rows touched. Idempotent.
	DeactivateFrom(ctx context.Context, pageID string, cutoff time.Time) (int64, error)
	FindActiveByPageID(ctx context.Context, pageID string) ([]domain.ChatMessage, error)
	CountByPageID(ctx context.Context, pageID string) (int64, error)
}
