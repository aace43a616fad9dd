package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mozteach/teach-api/internal/domain/entity"
	"github.com/mozteach/teach-api/pkg/logger/types"
)

type contextKey string

const actorKey contextKey = "actor"

type authService interface {
	Authenticate(ctx context.Context, key string) (*entity.User, error)
}

type Handler struct {
	authService authService
	logger      *types.Logger
}

func New(authService authService, logger *types.Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

// TokenAuth resolves an "Authorization: Token <key>" header into the
// acting user. An absent or unresolvable token leaves the request
// anonymous; write handlers reject anonymous actors themselves, so
// reads stay open.
func (h *Handler) TokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.authService.Authenticate(r.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				h.logger.Errorf("token lookup failed: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), user)))
	})
}

// WithActor attaches the authenticated user to the request context.
func WithActor(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, actorKey, user)
}

// Actor returns the authenticated user, if any.
func Actor(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(actorKey).(*entity.User)
	return user, ok && user != nil
}
