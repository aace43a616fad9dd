package postgres

import (
	"context"

	"github.com/mozteach/teach-api/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(&club).Error
	return club, err
}

// Get returns an active club by id. Soft-deleted clubs are not
// resolvable through this method.
func (s *ClubStorage) Get(ctx context.Context, id uint) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Preload("Owner").Where("id = ? AND active = ?", id, true).First(&club).Error
	return &club, err
}

// GetAll returns all active clubs in insertion order.
func (s *ClubStorage) GetAll(ctx context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Preload("Owner").Where("active = ?", true).Order("id asc").Find(&clubs).Error
	return clubs, err
}

func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Save(&club).Error
	return club, err
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Where("active = ?", true).Count(&count).Error
	return count, err
}
