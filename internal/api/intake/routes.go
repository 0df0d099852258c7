package intake

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers intake session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/intake-session", func(r chi.Router) {
		r.Post("/", h.StartSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/answer", h.Advance)
			r.Get("/result", h.GetResult)
		})
	})
}
