// File: internal/repository/credential/credential_repository.go
package credential

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrCredentialNotFound = errors.New("provider credential not found")

type gormCredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepository{db: db}
}

func (r *gormCredentialRepository) FindByUserAndProvider(ctx context.Context, userID, provider string) (*domain.ProviderCredential, error) {
	if userID == "" || provider == "" {
		return nil, errors.New("invalid user ID or provider")
	}

	var cred domain.ProviderCredential
	err := r.db.WithContext(ctx).
		First(&cred, "user_id = ? AND provider = ?", userID, provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		log.Printf("[CredentialRepository] Database error fetching credential for user %s provider %s: %v", userID, provider, err)
		return nil, errors.New("database error fetching credential")
	}
	return &cred, nil
}
