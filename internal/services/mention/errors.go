// File: internal/services/mention/errors.go
package mention

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeSearch     ErrorType = "SEARCH"
)

// SearchError is a typed mention-search failure.
type SearchError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Mention %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Mention %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SearchError) Unwrap() error { return e.Cause }

func NewValidationError(msg string) *SearchError {
	return &SearchError{Type: ErrTypeValidation, Operation: "search", Message: msg}
}

func NewSearchError(operation string, cause error) *SearchError {
	return &SearchError{Type: ErrTypeSearch, Operation: operation, Message: "search failed", Cause: cause}
}
