package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mozteach/teach-api/internal/adapters/config"
	"github.com/mozteach/teach-api/internal/domain/dto"
	"github.com/mozteach/teach-api/internal/domain/entity"
	"github.com/mozteach/teach-api/internal/domain/service"
	"github.com/mozteach/teach-api/pkg/logger/types"
)

type Handler struct {
	clubService *service.ClubService
	authService *service.AuthService
	app         config.App
	logger      *types.Logger
}

func New(clubService *service.ClubService, authService *service.AuthService, app config.App, logger *types.Logger) *Handler {
	return &Handler{
		clubService: clubService,
		authService: authService,
		app:         app,
		logger:      logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Errorf("failed to encode response: %v", err)
	}
}

func (h *Handler) writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Errorf("failed to write response: %v", err)
	}
}

// clubURL builds the absolute resource link carried in club objects.
func (h *Handler) clubURL(r *http.Request, id uint) string {
	base := h.app.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s/api/clubs/%d/", strings.TrimRight(base, "/"), id)
}

func (h *Handler) clubResponse(r *http.Request, club *entity.Club) dto.ClubResponse {
	return dto.ClubResponse{
		URL:         h.clubURL(r, club.ID),
		Owner:       club.Owner.Username,
		Name:        club.Name,
		Website:     club.Website,
		Description: club.Description,
		Location:    club.Location,
		Latitude:    club.Latitude,
		Longitude:   club.Longitude,
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "teach api is running"})
}
