// File: internal/domain/permission.go
package domain

import "time"

// AccessLevel is a user's permission tier on a page.
type AccessLevel string

const (
	AccessView    AccessLevel = "VIEW"
	AccessComment AccessLevel = "COMMENT"
	AccessEdit    AccessLevel = "EDIT"
	AccessShare   AccessLevel = "SHARE"
	AccessDelete  AccessLevel = "DELETE"
)

// PermissionPrecedence is the total order over access levels, weakest first.
// A user's level must rank at or above an action's required level.
var PermissionPrecedence = []AccessLevel{
	AccessView,
	AccessComment,
	AccessEdit,
	AccessShare,
	AccessDelete,
}

// Rank returns the level's position in PermissionPrecedence, or -1 for an
// unknown level.
func (l AccessLevel) Rank() int {
	for i, level := range PermissionPrecedence {
		if level == l {
			return i
		}
	}
	return -1
}

// PagePermission grants one user one access level on one page.
type PagePermission struct {
	ID        string      `gorm:"primaryKey"`
	UserID    string      `gorm:"index:idx_page_permission,unique;not null"`
	PageID    string      `gorm:"index:idx_page_permission,unique;not null"`
	Level     AccessLevel `gorm:"not null"`
	CreatedAt time.Time
}
