package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/mozteach/teach-api/internal/domain/common/errorz"
	"github.com/mozteach/teach-api/internal/domain/entity"
	"gorm.io/gorm"
)

// VerificationResult is the outcome of checking an identity assertion.
// Email is empty when the assertion did not resolve to an address.
type VerificationResult struct {
	Email string
}

// Verifier validates a signed identity assertion against an audience.
// Production uses the remote Persona verifier; tests inject fakes.
type Verifier interface {
	Verify(ctx context.Context, assertion, audience string) (*VerificationResult, error)
}

type TokenStorage interface {
	Create(ctx context.Context, token *entity.Token) (*entity.Token, error)
	Get(ctx context.Context, key string) (*entity.Token, error)
	GetByUserID(ctx context.Context, userID uint) (*entity.Token, error)
}

type authUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type AuthService struct {
	verifier     Verifier
	userStorage  authUserStorage
	tokenStorage TokenStorage
	audience     string
}

func NewAuthService(verifier Verifier, userStorage authUserStorage, tokenStorage TokenStorage, audience string) *AuthService {
	return &AuthService{
		verifier:     verifier,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		audience:     audience,
	}
}

// ExchangeAssertion trades an email assertion for the matching account
// and its API token. A failed verification, an assertion without an
// email and an email without an account all collapse into
// errorz.InvalidAssertion.
func (s *AuthService) ExchangeAssertion(ctx context.Context, assertion string) (*entity.User, *entity.Token, error) {
	result, err := s.verifier.Verify(ctx, assertion, s.audience)
	if err != nil || result == nil || result.Email == "" {
		return nil, nil, errorz.InvalidAssertion
	}

	user, err := s.userStorage.GetByEmail(ctx, result.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorz.InvalidAssertion
		}
		return nil, nil, err
	}

	token, err := s.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// GetOrCreateToken returns the user's API token, minting one on first
// use. The key stays stable across exchanges.
func (s *AuthService) GetOrCreateToken(ctx context.Context, userID uint) (*entity.Token, error) {
	token, err := s.tokenStorage.GetByUserID(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key, err := generateTokenKey(20)
	if err != nil {
		return nil, err
	}

	return s.tokenStorage.Create(ctx, &entity.Token{Key: key, UserID: userID})
}

// Authenticate resolves an API token key to its owning user.
func (s *AuthService) Authenticate(ctx context.Context, key string) (*entity.User, error) {
	token, err := s.tokenStorage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.userStorage.Get(ctx, token.UserID)
}

func generateTokenKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
