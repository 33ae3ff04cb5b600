// File: internal/repository/page/page_repository.go
package page

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrPageNotFound = errors.New("page not found")

type gormPageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepository {
	return &gormPageRepository{db: db}
}

func (r *gormPageRepository) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	if id == "" {
		return nil, errors.New("invalid page ID")
	}

	var page domain.Page
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		log.Printf("[PageRepository] Database error finding page %s: %v", id, err)
		return nil, errors.New("database error fetching page")
	}
	return &page, nil
}

func (r *gormPageRepository) SearchInDrive(ctx context.Context, driveID, query string, limit int) ([]domain.Page, error) {
	if driveID == "" {
		return nil, errors.New("invalid drive ID")
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	tx := r.db.WithContext(ctx).
		Where("drive_id = ? AND is_trashed = ?", driveID, false)
	if query != "" {
		// sqlite LIKE is case-insensitive, matching the original's ilike
		tx = tx.Where("title LIKE ?", "%"+query+"%")
	}

	var pages []domain.Page
	if err := tx.Order("title asc").Limit(limit).Find(&pages).Error; err != nil {
		log.Printf("[PageRepository] Database error searching drive %s: %v", driveID, err)
		return nil, errors.New("database error searching pages")
	}
	return pages, nil
}
