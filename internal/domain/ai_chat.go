// File: internal/domain/ai_chat.go
package domain

import "time"

// AiChat holds the per-page chat configuration. A page of type AI_CHAT has
// at most one. An empty Model means the page cannot generate yet.
type AiChat struct {
	ID           string   `json:"id" gorm:"primaryKey"`
	PageID       string   `json:"pageId" gorm:"uniqueIndex;not null"`
	Model        string   `json:"model"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Temperature  *float32 `json:"temperature,omitempty"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
