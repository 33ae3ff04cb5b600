// File: internal/repository/page/interface.go
package page

import (
	"context"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

// PageRepository handles page reads for the chat pipeline and mention search.
type PageRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Page, error)
	// SearchInDrive returns up to limit non-trashed pages in the drive whose
	// title contains query (case-insensitive). An empty query matches all.
	SearchInDrive(ctx context.Context, driveID, query string, limit int) ([]domain.Page, error)
}
