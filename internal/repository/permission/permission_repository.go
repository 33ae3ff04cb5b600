// File: internal/repository/permission/permission_repository.go
package permission

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrNoPermission = errors.New("no permission granted")

type gormPermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &gormPermissionRepository{db: db}
}

func (r *gormPermissionRepository) FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error) {
	if userID == "" || pageID == "" {
		return "", errors.New("invalid user or page ID")
	}

	var grant domain.PagePermission
	err := r.db.WithContext(ctx).
		First(&grant, "user_id = ? AND page_id = ?", userID, pageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoPermission
		}
		log.Printf("[PermissionRepository] Database error fetching grant for user %s page %s: %v", userID, pageID, err)
		return "", errors.New("database error fetching permission")
	}
	return grant.Level, nil
}
