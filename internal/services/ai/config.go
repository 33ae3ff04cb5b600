// File: internal/services/ai/config.go
package ai

import (
	"errors"
	"strings"
)

// Config holds model resolution settings.
type Config struct {
	// ProviderBaseURLs maps provider names to OpenAI-compatible endpoints.
	// An empty URL means the provider SDK default.
	ProviderBaseURLs map[string]string
	// DefaultProvider is assumed for bare model identifiers.
	DefaultProvider string
	// MaxToolRounds bounds tool-call round trips within one generation.
	MaxToolRounds int
}

func DefaultConfig() *Config {
	return &Config{
		ProviderBaseURLs: map[string]string{
			"openai":     "",
			"openrouter": "https://openrouter.ai/api/v1",
			"google":     "https://generativelanguage.googleapis.com/v1beta/openai/",
		},
		DefaultProvider: "openai",
		MaxToolRounds:   4,
	}
}

func (c *Config) Validate() error {
	if len(c.ProviderBaseURLs) == 0 {
		return errors.New("at least one provider must be configured")
	}
	if c.DefaultProvider == "" {
		return errors.New("default provider is required")
	}
	if c.MaxToolRounds <= 0 {
		return errors.New("max tool rounds must be positive")
	}
	return nil
}

// ParseModelID splits a configured model identifier of the form
// "provider:model" (e.g. "openrouter:meta-llama/llama-3-70b"). A bare model
// name belongs to defaultProvider.
func ParseModelID(modelID, defaultProvider string) (provider, model string) {
	if i := strings.Index(modelID, ":"); i > 0 {
		return modelID[:i], modelID[i+1:]
	}
	return defaultProvider, modelID
}
