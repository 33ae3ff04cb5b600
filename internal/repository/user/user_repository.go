// File: internal/repository/user/user_repository.go
package user

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, errors.New("invalid email")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

func (r *gormUserRepository) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	tx := r.db.WithContext(ctx)
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var users []domain.User
	if err := tx.Order("name asc").Limit(limit).Find(&users).Error; err != nil {
		log.Printf("[UserRepository] Database error searching users: %v", err)
		return nil, errors.New("database error searching users")
	}
	return users, nil
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
