package repository

import (
	"context"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository using the provided *gorm.DB.
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	row := User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	return mapGormError(
		r.db.WithContext(ctx).Create(&row).Error,
		domain.ErrUserNotFound,
		domain.ErrEmailAlreadyInUse,
	)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err, domain.ErrUserNotFound, domain.ErrEmailAlreadyInUse)
	}
	return mapUserRow(&row), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, mapGormError(err, domain.ErrUserNotFound, domain.ErrEmailAlreadyInUse)
	}
	return mapUserRow(&row), nil
}

func mapUserRow(row *User) *user.User {
	return &user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
