// File: internal/handlers/mention_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/middleware"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/mention"
)

// MentionHandler serves the mention suggestion search.
type MentionHandler struct {
	engine *mention.Engine
	logger services.Logger
}

func NewMentionHandler(engine *mention.Engine, logger services.Logger) *MentionHandler {
	return &MentionHandler{engine: engine, logger: logger}
}

// Search handles GET /api/mentions/search?q=...&driveId=...&types=page,user.
func (h *MentionHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	driveID := r.URL.Query().Get("driveId")
	types := parseMentionTypes(r.URL.Query().Get("types"))

	suggestions, err := h.engine.Search(r.Context(), userID, driveID, query, types)
	if err != nil {
		h.logger.Error("mention search failed", "drive_id", driveID, "error", err)
		status, message := statusForError(err)
		writeError(w, message, status)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// parseMentionTypes splits a comma-separated types filter. Unknown values
// are kept as-is; they match no candidates rather than widening the filter.
// An empty result means no filter.
func parseMentionTypes(raw string) []domain.MentionType {
	if raw == "" {
		return nil
	}
	var types []domain.MentionType
	for _, part := range strings.Split(raw, ",") {
		t := domain.MentionType(strings.TrimSpace(part))
		if t != "" {
			types = append(types, t)
		}
	}
	return types
}
