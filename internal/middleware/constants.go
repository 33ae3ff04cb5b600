// File: internal/middleware/constants.go
package middleware

import "context"

// contextKey keeps middleware values from colliding with other packages.
type contextKey string

const UserIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user ID set by the JWT
// middleware, or "" when the request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
