package handlers

import (
	"errors"
	"net/http"

	"github.com/mozteach/teach-api/internal/domain/common/errorz"
	"github.com/mozteach/teach-api/internal/domain/dto"
)

// PersonaTokenExchange trades an email assertion for the account's API
// token. The endpoint runs its own per-origin CORS policy: only
// whitelisted origins may read the response, and once the origin check
// passes every response echoes it back, including the failure paths.
func (h *Handler) PersonaTokenExchange(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !h.originAllowed(origin) {
		h.writeText(w, http.StatusForbidden, errorz.InvalidOrigin.Error())
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)

	if err := r.ParseForm(); err != nil {
		h.writeText(w, http.StatusBadRequest, errorz.AssertionRequired.Error())
		return
	}
	assertion := r.PostFormValue("assertion")
	if assertion == "" {
		h.writeText(w, http.StatusBadRequest, errorz.AssertionRequired.Error())
		return
	}

	user, token, err := h.authService.ExchangeAssertion(r.Context(), assertion)
	if err != nil {
		if errors.Is(err, errorz.InvalidAssertion) {
			h.writeText(w, http.StatusForbidden, errorz.InvalidAssertion.Error())
			return
		}
		h.logger.Errorf("assertion exchange failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.TokenResponse{
		Username: user.Username,
		Token:    token.Key,
	})
}

// originAllowed checks the request origin against the configured
// allow-list. A wildcard entry only counts in debug mode; in production
// every origin has to be listed explicitly.
func (h *Handler) originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range h.app.PersonaOrigins {
		if allowed == "*" {
			if h.app.Debug {
				return true
			}
			continue
		}
		if allowed == origin {
			return true
		}
	}
	return false
}
