// File: internal/domain/chat_message.go
package domain

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolCallRecord is one tool invocation the model made during a turn.
type ToolCallRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON as sent by the model
}

// ToolResultRecord is the result returned for one tool invocation.
type ToolResultRecord struct {
	CallID string          `json:"callId"`
	Name   string          `json:"name"`
	Result json.RawMessage `json:"result"`
}

// ChatMessage is one persisted message on an AI chat page. Superseded
// messages are soft-invalidated via IsActive, never deleted.
type ChatMessage struct {
	ID          string             `json:"id" gorm:"primaryKey"`
	PageID      string             `json:"pageId" gorm:"index;not null"`
	UserID      string             `json:"userId,omitempty"` // empty for assistant messages
	Role        string             `json:"role" gorm:"not null"`
	Content     string             `json:"content"`
	ToolCalls   []ToolCallRecord   `json:"toolCalls,omitempty" gorm:"serializer:json"`
	ToolResults []ToolResultRecord `json:"toolResults,omitempty" gorm:"serializer:json"`
	IsActive    bool               `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time          `json:"createdAt"`
	EditedAt    *time.Time         `json:"editedAt,omitempty"`
}
