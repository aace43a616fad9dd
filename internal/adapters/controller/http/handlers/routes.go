package handlers

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/mozteach/teach-api/internal/adapters/controller/http/middlewares"
)

// SetRoutes mounts the API. Everything under /api carries the open CORS
// gate so any origin can read it; the persona exchange sits outside and
// enforces its own allow-list.
func (h *Handler) SetRoutes(r *chi.Mux, auth *middlewares.Handler) {
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiCORS().Handler)
		if h.app.RateLimit > 0 {
			r.Use(httprate.LimitByIP(h.app.RateLimit, 1*time.Minute))
		}
		r.Use(auth.TokenAuth)

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", h.ListClubs)
			r.Post("/", h.CreateClub)
			r.Get("/{id}", h.RetrieveClub)
			r.Patch("/{id}", h.UpdateClub)
			r.Put("/{id}", h.UpdateClub)
			r.Delete("/{id}", h.DeleteClub)
		})
	})

	r.Post("/persona", h.PersonaTokenExchange)
}

func apiCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	})
}
