// File: internal/domain/credential.go
package domain

import "time"

// ProviderCredential is a user's stored API key for a model provider.
type ProviderCredential struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_user_provider,unique;not null"`
	Provider  string `gorm:"index:idx_user_provider,unique;not null"`
	APIKey    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
