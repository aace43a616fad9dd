package service

import (
	"context"
	"errors"

	"github.com/mozteach/teach-api/internal/domain/entity"
	"gorm.io/gorm"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
	}
}

func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	return s.storage.Create(ctx, &user)
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.storage.GetByUsername(ctx, username)
}

// EnsureUser returns the account with the given username, provisioning
// it when absent. Used to seed the first account at startup.
func (s *UserService) EnsureUser(ctx context.Context, username, email string) (*entity.User, error) {
	user, err := s.storage.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.storage.Create(ctx, &entity.User{Username: username, Email: email})
}
