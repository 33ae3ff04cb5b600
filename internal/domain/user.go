// File: internal/domain/user.go
package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Image        string `json:"image,omitempty"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
