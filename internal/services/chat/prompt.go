// File: internal/services/chat/prompt.go
package chat

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// MentionContextResolver extracts referenced-entity context text from a
// message body. Implementations live outside this package; extraction
// failure is recovered by the orchestrator and never fails a turn.
type MentionContextResolver interface {
	ExtractMentionContexts(ctx context.Context, content domain.MessageContent, userID string) (string, error)
}

// buildSystemPrompt appends the mention context to the configured prompt as
// a delimited block, only when context is non-empty.
func buildSystemPrompt(configured, mentionContext string) string {
	if configured == "" {
		configured = DefaultSystemPrompt
	}
	if mentionContext == "" {
		return configured
	}
	return configured + "\n\nThe user has mentioned the following in their message:\n" + mentionContext
}
