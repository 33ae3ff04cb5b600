// File: internal/services/chat/config.go
package chat

import "errors"

// DefaultSystemPrompt is used when a chat page has no configured prompt.
const DefaultSystemPrompt = "You are a helpful and friendly AI assistant. Answer the questions in a concise and accurate manner."

// DefaultTemperature applies when the page configuration leaves it unset.
const DefaultTemperature float32 = 0.7

// Config holds turn orchestration settings.
type Config struct {
	SystemPrompt string
	Temperature  float32
	// MaxMessages bounds how much history a single turn may carry.
	MaxMessages int
}

func DefaultConfig() *Config {
	return &Config{
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  DefaultTemperature,
		MaxMessages:  200,
	}
}

func (c *Config) Validate() error {
	if c.SystemPrompt == "" {
		return errors.New("system prompt is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	if c.MaxMessages <= 0 {
		return errors.New("max messages must be positive")
	}
	return nil
}
