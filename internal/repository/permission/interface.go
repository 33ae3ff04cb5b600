// File: internal/repository/permission/interface.go
package permission

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// PermissionRepository resolves a user's effective access level on a page.
type PermissionRepository interface {
	// FindLevel returns the user's access level on the page, or
	// ErrNoPermission when none has been granted.
	FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error)
}
