package repository

import (
	"context"
	"strings"

	"github.com/paprooms/server/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Save(ctx context.Context, tx *gorm.DB, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches case-insensitively; emails are stored lowercased.
func (r *userRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	if tx == nil {
		tx = r.db
	}
	var user models.User
	err := tx.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(user).Error
}
