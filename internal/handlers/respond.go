// File: internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2witstudios/pagespace.team/internal/services/access"
	"github.com/2witstudios/pagespace.team/internal/services/ai"
	"github.com/2witstudios/pagespace.team/internal/services/chat"
	"github.com/2witstudios/pagespace.team/internal/services/mention"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the typed service errors onto HTTP status codes and a
// client-safe message.
func statusForError(err error) (int, string) {
	var accessErr *access.AccessError
	if errors.As(err, &accessErr) {
		if accessErr.IsForbidden() {
			return http.StatusForbidden, "Access denied"
		}
		return http.StatusInternalServerError, "Could not check permissions"
	}

	var aiErr *ai.AIError
	if errors.As(err, &aiErr) {
		switch aiErr.Type {
		case ai.ErrTypeNoModel, ai.ErrTypeCredential, ai.ErrTypeValidation:
			return http.StatusBadRequest, aiErr.Message
		case ai.ErrTypeProvider:
			return http.StatusBadGateway, aiErr.Message
		default:
			return http.StatusInternalServerError, "Generation failed"
		}
	}

	var turnErr *chat.TurnError
	if errors.As(err, &turnErr) {
		switch turnErr.Type {
		case chat.ErrTypeValidation:
			return http.StatusBadRequest, turnErr.Message
		case chat.ErrTypeNotFound:
			return http.StatusNotFound, turnErr.Message
		case chat.ErrTypeTrashed:
			return http.StatusForbidden, turnErr.Message
		default:
			return http.StatusInternalServerError, "Could not complete the turn"
		}
	}

	var searchErr *mention.SearchError
	if errors.As(err, &searchErr) {
		if searchErr.Type == mention.ErrTypeValidation {
			return http.StatusBadRequest, searchErr.Message
		}
		return http.StatusInternalServerError, "Search failed"
	}

	return http.StatusInternalServerError, "Internal server error"
}
