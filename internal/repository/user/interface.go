// File: internal/repository/user/interface.go
package user

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// UserRepository handles user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Search matches query against name or email (case-insensitive
	// substring). An empty query matches all users, up to limit.
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
}
