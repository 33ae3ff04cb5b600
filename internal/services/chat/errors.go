// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeTrashed     ErrorType = "TRASHED"
	ErrTypeGeneration  ErrorType = "GENERATION"
	ErrTypePersistence ErrorType = "PERSISTENCE"
)

// TurnError is a typed failure from the turn state machine.
type TurnError struct {
	Type      ErrorType
	Operation string
	PageID    string
	Message   string
	Cause     error
}

func (e *TurnError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Turn %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Turn %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *TurnError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *TurnError {
	return &TurnError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(pageID string) *TurnError {
	return &TurnError{Type: ErrTypeNotFound, Operation: "preconditions", PageID: pageID, Message: "page not found"}
}

func NewTrashedError(pageID string) *TurnError {
	return &TurnError{Type: ErrTypeTrashed, Operation: "preconditions", PageID: pageID, Message: "page is in trash"}
}

func NewGenerationError(pageID string, cause error) *TurnError {
	return &TurnError{Type: ErrTypeGeneration, Operation: "generating", PageID: pageID, Message: "generation failed", Cause: cause}
}

func NewPersistenceError(pageID string, cause error) *TurnError {
	return &TurnError{Type: ErrTypePersistence, Operation: "persisting", PageID: pageID, Message: "could not persist exchange", Cause: cause}
}
