// File: internal/repository/aichat/interface.go
package aichat

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// AiChatRepository reads per-page chat configuration.
type AiChatRepository interface {
	FindByPageID(ctx context.Context, pageID string) (*domain.AiChat, error)
}
