package postgres

import (
	"context"

	"github.com/mozteach/teach-api/internal/domain/entity"
	"gorm.io/gorm"
)

type userStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *userStorage {
	return &userStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *userStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Create(&user).Error
	return user, err
}

// Get is a function that gets a user from the database by id.
func (s *userStorage) Get(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, err
}

// GetByEmail is a function that gets a user from the database by email.
func (s *userStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// GetByUsername is a function that gets a user from the database by username.
func (s *userStorage) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}
