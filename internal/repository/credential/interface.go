// File: internal/repository/credential/interface.go
package credential

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// CredentialRepository reads user-linked provider API keys.
type CredentialRepository interface {
	FindByUserAndProvider(ctx context.Context, userID, provider string) (*domain.ProviderCredential, error)
}
