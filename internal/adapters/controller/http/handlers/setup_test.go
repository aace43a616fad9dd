package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mozteach/teach-api/internal/adapters/config"
	"github.com/mozteach/teach-api/internal/adapters/controller/http/handlers"
	"github.com/mozteach/teach-api/internal/adapters/controller/http/middlewares"
	"github.com/mozteach/teach-api/internal/domain/entity"
	"github.com/mozteach/teach-api/internal/domain/service"
	"github.com/mozteach/teach-api/pkg/logger/types"
)

type memoryClubStorage struct {
	clubs  map[uint]*entity.Club
	nextID uint
}

func (m *memoryClubStorage) Create(_ context.Context, club *entity.Club) (*entity.Club, error) {
	m.nextID++
	club.ID = m.nextID
	stored := *club
	m.clubs[club.ID] = &stored
	return club, nil
}

func (m *memoryClubStorage) Get(_ context.Context, id uint) (*entity.Club, error) {
	club, ok := m.clubs[id]
	if !ok || !club.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *club
	return &cp, nil
}

func (m *memoryClubStorage) GetAll(_ context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	for id := uint(1); id <= m.nextID; id++ {
		if club, ok := m.clubs[id]; ok && club.Active {
			clubs = append(clubs, *club)
		}
	}
	return clubs, nil
}

func (m *memoryClubStorage) Update(_ context.Context, club *entity.Club) (*entity.Club, error) {
	stored := *club
	m.clubs[club.ID] = &stored
	return club, nil
}

func (m *memoryClubStorage) Count(_ context.Context) (int64, error) {
	var count int64
	for _, club := range m.clubs {
		if club.Active {
			count++
		}
	}
	return count, nil
}

type memoryUserStorage struct {
	users map[uint]*entity.User
}

func (m *memoryUserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserStorage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memoryTokenStorage struct {
	tokens map[string]*entity.Token
}

func (m *memoryTokenStorage) Create(_ context.Context, token *entity.Token) (*entity.Token, error) {
	m.tokens[token.Key] = token
	return token, nil
}

func (m *memoryTokenStorage) Get(_ context.Context, key string) (*entity.Token, error) {
	token, ok := m.tokens[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (m *memoryTokenStorage) GetByUserID(_ context.Context, userID uint) (*entity.Token, error) {
	for _, token := range m.tokens {
		if token.UserID == userID {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMailer struct {
	creatorMails [][]string // recipient, username
	staffMails   [][]string // recipients..., then username/email/club fields
	fail         bool
}

func (m *fakeMailer) SendClubCreated(to string, username string) error {
	m.creatorMails = append(m.creatorMails, []string{to, username})
	if m.fail {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func (m *fakeMailer) SendStaffClubNotification(to []string, username, email, clubName, clubLocation, clubWebsite, clubDescription string) error {
	record := append(append([]string{}, to...), username, email, clubName, clubLocation, clubWebsite, clubDescription)
	m.staffMails = append(m.staffMails, record)
	if m.fail {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

type fakeVerifier struct {
	email string
	err   error
}

func (v *fakeVerifier) Verify(_ context.Context, _, _ string) (*service.VerificationResult, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &service.VerificationResult{Email: v.email}, nil
}

type env struct {
	router   *chi.Mux
	clubs    *memoryClubStorage
	users    *memoryUserStorage
	tokens   *memoryTokenStorage
	mailer   *fakeMailer
	verifier *fakeVerifier
	auth     *service.AuthService
	nextUser uint
}

func newEnv(app config.App) *env {
	lg := &types.Logger{SugaredLogger: zap.NewNop().Sugar()}

	e := &env{
		clubs:    &memoryClubStorage{clubs: make(map[uint]*entity.Club)},
		users:    &memoryUserStorage{users: make(map[uint]*entity.User)},
		tokens:   &memoryTokenStorage{tokens: make(map[string]*entity.Token)},
		mailer:   &fakeMailer{},
		verifier: &fakeVerifier{},
	}

	notifyService := service.NewNotifyService(e.mailer, app.StaffEmails, lg)
	clubService := service.NewClubService(e.clubs, notifyService)
	e.auth = service.NewAuthService(e.verifier, e.users, e.tokens, app.Audience)

	h := handlers.New(clubService, e.auth, app, lg)
	auth := middlewares.New(e.auth, lg)

	r := chi.NewRouter()
	r.Use(chiMiddleware.StripSlashes)
	h.SetRoutes(r, auth)
	e.router = r

	return e
}

func (e *env) addUser(username, email string) *entity.User {
	e.nextUser++
	user := &entity.User{ID: e.nextUser, Username: username, Email: email}
	e.users.users[user.ID] = user
	return user
}

func (e *env) tokenFor(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := e.auth.GetOrCreateToken(context.Background(), user.ID)
	require.NoError(t, err)
	return token.Key
}

// do runs a JSON request against the router. An empty token leaves the
// request anonymous.
func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func clubPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":        "my club",
		"website":     "http://myclub.org/",
		"description": "This is my club.",
		"location":    "Somewhere",
		"latitude":    5,
		"longitude":   6,
	}
}
