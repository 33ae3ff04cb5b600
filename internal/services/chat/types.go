// File: internal/services/chat/types.go
package chat

import (
	"strconv"
	"time"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// IncomingMessage is one element of the turn's visible history. Content is
// plain text or a mention-bearing document.
type IncomingMessage struct {
	Role      string                `json:"role"`
	Content   domain.MessageContent `json:"content"`
	CreatedAt *time.Time            `json:"createdAt,omitempty"`
}

// TurnRequest is one submitted turn: the full visible history (last element
// is the new user message) plus optional edit/regenerate flags, each paired
// with its cutoff timestamp.
type TurnRequest struct {
	Messages                    []IncomingMessage `json:"messages"`
	IsEdit                      bool              `json:"isEdit,omitempty"`
	EditedMessageCreatedAt      *time.Time        `json:"editedMessageCreatedAt,omitempty"`
	IsRegenerate                bool              `json:"isRegenerate,omitempty"`
	RegeneratedMessageCreatedAt *time.Time        `json:"regeneratedMessageCreatedAt,omitempty"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the structural invariants of a turn request and returns
// one FieldError per violation.
func (r *TurnRequest) Validate() []FieldError {
	var errs []FieldError

	if len(r.Messages) == 0 {
		errs = append(errs, FieldError{Field: "messages", Message: "at least one message is required"})
	}
	for i, m := range r.Messages {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			errs = append(errs, FieldError{
				Field:   "messages",
				Message: "message " + strconv.Itoa(i) + " has an invalid role",
			})
		}
	}
	if len(r.Messages) > 0 && r.Messages[len(r.Messages)-1].Role != domain.RoleUser {
		errs = append(errs, FieldError{Field: "messages", Message: "last message must be the new user turn"})
	}
	if r.IsEdit && r.EditedMessageCreatedAt == nil {
		errs = append(errs, FieldError{Field: "editedMessageCreatedAt", Message: "required when isEdit is set"})
	}
	if r.IsRegenerate && r.RegeneratedMessageCreatedAt == nil {
		errs = append(errs, FieldError{Field: "regeneratedMessageCreatedAt", Message: "required when isRegenerate is set"})
	}
	return errs
}

// LastUserMessage returns the new user turn being answered.
func (r *TurnRequest) LastUserMessage() *IncomingMessage {
	if len(r.Messages) == 0 {
		return nil
	}
	return &r.Messages[len(r.Messages)-1]
}
