// File: internal/services/ai/resolver.go
package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/2witstudios/pagespace.team/internal/repository/credential"
	"github.com/2witstudios/pagespace.team/internal/services"
)

// Resolver maps a configured model identifier plus the caller's stored
// credential to a streaming backend bound to that credential.
type Resolver struct {
	config      *Config
	credentials credential.CredentialRepository
	logger      services.Logger
}

func NewResolver(config *Config, credentials credential.CredentialRepository, logger services.Logger) (*Resolver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}
	if credentials == nil {
		return nil, NewValidationError("constructor", "credential repository is required")
	}
	return &Resolver{config: config, credentials: credentials, logger: logger}, nil
}

func (r *Resolver) Resolve(ctx context.Context, userID, modelID string) (*ResolvedModel, error) {
	if strings.TrimSpace(modelID) == "" {
		return nil, NewNoModelError()
	}

	providerName, model := ParseModelID(modelID, r.config.DefaultProvider)
	baseURL, ok := r.config.ProviderBaseURLs[providerName]
	if !ok {
		return nil, NewValidationError("resolve", "unknown model provider "+providerName)
	}

	cred, err := r.credentials.FindByUserAndProvider(ctx, userID, providerName)
	if err != nil {
		if errors.Is(err, credential.ErrCredentialNotFound) {
			return nil, NewCredentialMissingError(providerName)
		}
		r.logger.Error("credential lookup failed", "user_id", userID, "provider", providerName, "error", err)
		return nil, NewStreamingError("resolve", "credential lookup failed", err)
	}

	return &ResolvedModel{
		Provider:     NewOpenAIProvider(cred.APIKey, baseURL, providerName, r.config.MaxToolRounds, r.logger),
		ProviderName: providerName,
		Model:        model,
	}, nil
}
