// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2witstudios/pagespace.team/internal/auth"
	"github.com/2witstudios/pagespace.team/internal/services"
)

// SessionCookieName is the cookie the login handler sets and this
// middleware reads.
const SessionCookieName = "accessToken"

// NewJWTMiddleware validates the session cookie and stashes the user ID in
// the request context. API clients get a JSON 401, never a redirect.
func NewJWTMiddleware(secretKey []byte, logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			userID, err := auth.ValidateToken(cookie.Value, secretKey)
			if err != nil {
				logger.Debug("rejected session token", "error", err)
				// Clear the invalid cookie so the client stops sending it.
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    "",
					Path:     "/",
					Expires:  time.Unix(0, 0),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				writeUnauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
