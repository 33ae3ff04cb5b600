// File: internal/domain/conversation.go
package domain

import "time"

// AssistantConversation is a drive-scoped conversation with the workspace
// assistant, owned by a single user.
type AssistantConversation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	DriveID   string    `json:"driveId" gorm:"index;not null"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
