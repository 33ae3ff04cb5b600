// File: internal/middleware/logger.go
package middleware

import (
	"net/http"
	"time"

	"github.com/2witstudios/pagespace.team/internal/services"
)

// LoggingMiddleware logs incoming HTTP request and response details.
func LoggingMiddleware(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapper.statusCode,
				"remote", r.RemoteAddr,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush forwards streaming flushes so SSE keeps working behind the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
