// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2witstudios/pagespace.team/internal/ratelimit"
	"github.com/2witstudios/pagespace.team/internal/services"
)

// RateLimitMiddleware throttles requests per caller. Authenticated requests
// are keyed by user ID so one user cannot burn another's budget; anonymous
// ones fall back to client IP.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string, logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := UserIDFromContext(r.Context())
			if identifier == "" {
				identifier = ratelimit.GetClientIP(r)
			}
			identifier = name + ":" + identifier

			allowed, info := limiter.Allow(identifier)

			limit := info.Remaining
			if info.Allowed {
				limit++
			}
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))

			if !allowed {
				logger.Warn("rate limited request",
					"limiter", name, "identifier", identifier, "banned", info.Banned)

				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", info.RetryAfter.Seconds()))
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many requests. Please try again later.",
					"retryAfter": int(info.RetryAfter.Seconds()),
					"banned":     info.Banned,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
