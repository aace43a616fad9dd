package postgres

import (
	"context"

	"github.com/mozteach/teach-api/internal/domain/entity"
	"gorm.io/gorm"
)

type TokenStorage struct {
	db *gorm.DB
}

func NewTokenStorage(db *gorm.DB) *TokenStorage {
	return &TokenStorage{
		db: db,
	}
}

func (s *TokenStorage) Create(ctx context.Context, token *entity.Token) (*entity.Token, error) {
	err := s.db.WithContext(ctx).Create(&token).Error
	return token, err
}

// Get is a function that gets a token from the database by key.
func (s *TokenStorage) Get(ctx context.Context, key string) (*entity.Token, error) {
	var token entity.Token
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&token).Error
	return &token, err
}

// GetByUserID is a function that gets a user's token from the database.
func (s *TokenStorage) GetByUserID(ctx context.Context, userID uint) (*entity.Token, error) {
	var token entity.Token
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	return &token, err
}
