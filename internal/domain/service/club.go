package service

import (
	"context"

	"github.com/mozteach/teach-api/internal/domain/common/errorz"
	"github.com/mozteach/teach-api/internal/domain/dto"
	"github.com/mozteach/teach-api/internal/domain/entity"
)

type ClubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id uint) (*entity.Club, error)
	GetAll(ctx context.Context) ([]entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Count(ctx context.Context) (int64, error)
}

type clubNotifier interface {
	ClubCreated(owner *entity.User, club *entity.Club)
}

type ClubService struct {
	storage  ClubStorage
	notifier clubNotifier
}

func NewClubService(storage ClubStorage, notifier clubNotifier) *ClubService {
	return &ClubService{
		storage:  storage,
		notifier: notifier,
	}
}

// List returns all active clubs in insertion order. Soft-deleted clubs
// never show up here.
func (s *ClubService) List(ctx context.Context) ([]entity.Club, error) {
	return s.storage.GetAll(ctx)
}

// Create persists a new active club owned by the actor. Whatever owner
// the payload carried is discarded. Notification sends are best-effort
// and cannot fail the call.
func (s *ClubService) Create(ctx context.Context, actor *entity.User, club entity.Club) (*entity.Club, error) {
	if actor == nil {
		return nil, errorz.Forbidden
	}

	club.ID = 0
	club.OwnerID = actor.ID
	club.Owner = *actor
	club.Active = true

	created, err := s.storage.Create(ctx, &club)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ClubCreated(actor, created)
	}

	return created, nil
}

func (s *ClubService) Get(ctx context.Context, id uint) (*entity.Club, error) {
	return s.storage.Get(ctx, id)
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

// CanWrite reports whether the actor may mutate the club. Reads are open
// to anyone; writes are restricted to the owner. An anonymous actor and
// a mismatched one are treated the same.
func (s *ClubService) CanWrite(actor *entity.User, club *entity.Club) bool {
	return actor != nil && actor.ID == club.OwnerID
}

// Update applies the non-nil patch fields to the club. Identifier and
// owner are untouchable.
func (s *ClubService) Update(ctx context.Context, actor *entity.User, id uint, patch dto.ClubPatch) (*entity.Club, error) {
	club, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.CanWrite(actor, club) {
		return nil, errorz.Forbidden
	}

	if patch.Name != nil {
		club.Name = *patch.Name
	}
	if patch.Website != nil {
		club.Website = *patch.Website
	}
	if patch.Description != nil {
		club.Description = *patch.Description
	}
	if patch.Location != nil {
		club.Location = *patch.Location
	}
	if patch.Latitude != nil {
		club.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		club.Longitude = *patch.Longitude
	}

	return s.storage.Update(ctx, club)
}

// Delete soft-deletes the club: the record stays in the store with
// Active set to false.
func (s *ClubService) Delete(ctx context.Context, actor *entity.User, id uint) error {
	club, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.CanWrite(actor, club) {
		return errorz.Forbidden
	}

	club.Active = false
	_, err = s.storage.Update(ctx, club)
	return err
}
