package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"gorm.io/gorm"

	"github.com/mozteach/teach-api/internal/adapters/controller/http/middlewares"
	"github.com/mozteach/teach-api/internal/domain/common/errorz"
	"github.com/mozteach/teach-api/internal/domain/dto"
	"github.com/mozteach/teach-api/internal/domain/entity"
	"github.com/mozteach/teach-api/internal/domain/utils/validator"
)

// ListClubs returns every active club. No authentication required.
func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubService.List(r.Context())
	if err != nil {
		h.clubError(w, err)
		return
	}

	out := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		out = append(out, h.clubResponse(r, &clubs[i]))
	}

	h.writeJSON(w, http.StatusOK, out)
}

// CreateClub persists a new club owned by the authenticated actor.
func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.Actor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var payload dto.ClubCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Malformed request body."},
		})
		return
	}

	if fieldErrors := validator.ClubCreate(payload); len(fieldErrors) > 0 {
		h.writeJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	club := entity.Club{
		Name:        payload.Name,
		Website:     payload.Website,
		Description: payload.Description,
		Location:    payload.Location,
		Latitude:    *payload.Latitude,
		Longitude:   *payload.Longitude,
	}

	created, err := h.clubService.Create(r.Context(), actor, club)
	if err != nil {
		h.clubError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, h.clubResponse(r, created))
}

// RetrieveClub returns a single club by id. Soft-deleted clubs 404.
func (h *Handler) RetrieveClub(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	club, err := h.clubService.Get(r.Context(), id)
	if err != nil {
		h.clubError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.clubResponse(r, club))
}

// UpdateClub applies a full or partial update. Owner only.
func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var patch dto.ClubPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Malformed request body."},
		})
		return
	}

	actor, _ := middlewares.Actor(r.Context())
	updated, err := h.clubService.Update(r.Context(), actor, id, patch)
	if err != nil {
		h.clubError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.clubResponse(r, updated))
}

// DeleteClub soft-deletes the club. Owner only, 204 on success.
func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	actor, _ := middlewares.Actor(r.Context())
	if err := h.clubService.Delete(r.Context(), actor, id); err != nil {
		h.clubError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clubError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errorz.Forbidden):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, errorz.NotFound), errors.Is(err, gorm.ErrRecordNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		h.logger.Errorf("club request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func clubID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
