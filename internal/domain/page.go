// File: internal/domain/page.go
package domain

import "time"

// PageType mirrors the page kinds a drive can hold.
type PageType string

const (
	PageTypeDocument PageType = "DOCUMENT"
	PageTypeFolder   PageType = "FOLDER"
	PageTypeDatabase PageType = "DATABASE"
	PageTypeChannel  PageType = "CHANNEL"
	PageTypeAIChat   PageType = "AI_CHAT"
)

// Page represents a single page inside a drive.
type Page struct {
	ID        string   `json:"id" gorm:"primaryKey"`
	DriveID   string   `json:"driveId" gorm:"index;not null"`
	Title     string   `json:"title"`
	Type      PageType `json:"type" gorm:"not null"`
	Content   string   `json:"content"` // markdown body, empty for folders
	IsTrashed bool     `json:"isTrashed" gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
