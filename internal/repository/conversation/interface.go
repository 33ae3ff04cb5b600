// File: internal/repository/conversation/interface.go
package conversation

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// ConversationRepository handles assistant conversation reads.
type ConversationRepository interface {
	// SearchOwned returns up to limit conversations in the drive owned by
	// userID whose title contains query (case-insensitive substring). An
	// empty query matches all.
	SearchOwned(ctx context.Context, driveID, userID, query string, limit int) ([]domain.AssistantConversation, error)
}
