// File: internal/services/access/errors.go
package access

import "fmt"

type ErrorType string

const (
	ErrTypeForbidden  ErrorType = "FORBIDDEN"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeLookup     ErrorType = "LOOKUP"
)

// AccessError is a typed denial or failure from the access gate.
type AccessError struct {
	Type    ErrorType
	UserID  string
	PageID  string
	Message string
	Cause   error
}

func (e *AccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Access %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("Access %s error: %s", e.Type, e.Message)
}

func (e *AccessError) Unwrap() error { return e.Cause }

// IsForbidden reports whether the error is an access denial rather than an
// infrastructure failure.
func (e *AccessError) IsForbidden() bool { return e.Type == ErrTypeForbidden }

func NewForbiddenError(userID, pageID, msg string) *AccessError {
	return &AccessError{Type: ErrTypeForbidden, UserID: userID, PageID: pageID, Message: msg}
}

func NewLookupError(userID, pageID string, cause error) *AccessError {
	return &AccessError{
		Type:    ErrTypeLookup,
		UserID:  userID,
		PageID:  pageID,
		Message: "could not resolve access level",
		Cause:   cause,
	}
}
