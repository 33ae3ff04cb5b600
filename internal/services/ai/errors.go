// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeNoModel    ErrorType = "NO_MODEL"
	ErrTypeCredential ErrorType = "CREDENTIAL_MISSING"
	ErrTypeProvider   ErrorType = "PROVIDER_REJECTED"
	ErrTypeStreaming  ErrorType = "STREAMING"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// AIError is a typed model-resolution or generation failure. The three
// resolution types each surface to the caller as a distinct status.
type AIError struct {
	Type      ErrorType
	Provider  string
	Operation string
	Message   string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewNoModelError() *AIError {
	return &AIError{
		Type:      ErrTypeNoModel,
		Operation: "resolve",
		Message:   "no model configured for this chat",
	}
}

func NewCredentialMissingError(provider string) *AIError {
	return &AIError{
		Type:      ErrTypeCredential,
		Provider:  provider,
		Operation: "resolve",
		Message:   fmt.Sprintf("no %s credential linked for this account", provider),
	}
}

func NewProviderRejectedError(provider string, cause error) *AIError {
	return &AIError{
		Type:      ErrTypeProvider,
		Provider:  provider,
		Operation: "generate",
		Message:   "provider rejected the stored credential",
		Cause:     cause,
	}
}

func NewStreamingError(operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeStreaming, Operation: operation, Message: msg, Cause: cause}
}

func NewValidationError(operation, msg string) *AIError {
	return &AIError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}
