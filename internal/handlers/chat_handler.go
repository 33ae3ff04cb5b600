// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2witstudios/pagespace.team/internal/middleware"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/ai"
	"github.com/2witstudios/pagespace.team/internal/services/chat"
)

// ChatHandler serves the streamed AI turn endpoint.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
	logger       services.Logger
}

func NewChatHandler(orchestrator *chat.Orchestrator, logger services.Logger) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator, logger: logger}
}

// StreamMessages handles POST /api/ai/ai-page/messages/{pageId}. The reply
// streams as server-sent events; errors before the first token map to plain
// JSON statuses, errors after it become a terminal error event.
func (h *ChatHandler) StreamMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	pageID := mux.Vars(r)["pageId"]
	if pageID == "" {
		writeError(w, "pageId is required", http.StatusBadRequest)
		return
	}

	var req chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid request",
			"details": fieldErrs,
		})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sink := &sseSink{w: w, flusher: flusher}
	err := h.orchestrator.StreamTurn(r.Context(), userID, pageID, &req, sink)
	if err != nil {
		h.logger.Error("turn failed", "page_id", pageID, "error", err)
		status, message := statusForError(err)
		if !sink.started {
			writeError(w, message, status)
			return
		}
		// Headers are gone; the error travels in-band.
		sink.event("error", map[string]string{"error": message})
		return
	}

	if !sink.started {
		sink.begin()
	}
	sink.event("done", map[string]string{"status": "complete"})
}

// sseSink writes orchestrator callbacks as server-sent events. Headers are
// sent lazily on the first event so early failures can still use a status
// code.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func (s *sseSink) begin() {
	if s.started {
		return
	}
	s.started = true
	s.w.Header().Set("Content-Type", "text/event-stream")
	s.w.Header().Set("Cache-Control", "no-cache")
	s.w.Header().Set("Connection", "keep-alive")
	s.w.Header().Set("X-Accel-Buffering", "no")
	s.w.WriteHeader(http.StatusOK)
}

func (s *sseSink) event(name string, payload interface{}) error {
	s.begin()
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) Delta(text string) error {
	return s.event("delta", map[string]string{"text": text})
}

func (s *sseSink) ToolCall(call ai.ToolCall) error {
	return s.event("tool_call", map[string]interface{}{
		"id":        call.ID,
		"name":      call.Name,
		"arguments": json.RawMessage(call.Arguments),
	})
}

func (s *sseSink) ToolResult(result ai.ToolResult) error {
	return s.event("tool_result", map[string]interface{}{
		"callId": result.CallID,
		"name":   result.Name,
		"result": json.RawMessage(result.Result),
	})
}
