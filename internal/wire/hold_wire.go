package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHold(r chi.Router, holdHandler *adaptor.HoldHandler) {
	r.Route("/api/holds", func(r chi.Router) {
		// POST /api/holds - Reserve seats under a short-lived hold
		r.Post("/", holdHandler.CreateHold)

		// GET /api/holds/{id} - Inspect a hold and its seats
		r.Get("/{id}", holdHandler.GetHold)

		// DELETE /api/holds/{id} - Cancel a hold and free its seats
		r.Delete("/{id}", holdHandler.CancelHold)
	})
}
