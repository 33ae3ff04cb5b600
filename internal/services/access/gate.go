// File: internal/services/access/gate.go
package access

import (
	"context"
	"errors"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/permission"
	"github.com/2witstudios/pagespace.team/internal/services"
)

// Gate checks a user's effective access level on a page against the level an
// action requires. The check is mandatory before any mutation or generation
// call and short-circuits the whole operation on denial.
type Gate struct {
	permissions permission.PermissionRepository
	logger      services.Logger
}

func NewGate(permissions permission.PermissionRepository, logger services.Logger) *Gate {
	return &Gate{permissions: permissions, logger: logger}
}

// Check returns the user's access level on the page when it ranks at or
// above required, and a Forbidden AccessError otherwise. Rank comparison
// follows domain.PermissionPrecedence.
func (g *Gate) Check(ctx context.Context, userID, pageID string, required domain.AccessLevel) (domain.AccessLevel, error) {
	if userID == "" || pageID == "" {
		return "", &AccessError{Type: ErrTypeValidation, Message: "user and page are required"}
	}

	level, err := g.permissions.FindLevel(ctx, userID, pageID)
	if err != nil {
		if errors.Is(err, permission.ErrNoPermission) {
			return "", NewForbiddenError(userID, pageID, "no access to page")
		}
		g.logger.Error("access level lookup failed", "user_id", userID, "page_id", pageID, "error", err)
		return "", NewLookupError(userID, pageID, err)
	}

	if level.Rank() < required.Rank() {
		return "", NewForbiddenError(userID, pageID, "insufficient access level")
	}
	return level, nil
}
