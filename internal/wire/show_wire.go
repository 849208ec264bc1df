package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler) {
	// GET /api/shows/{id}/seat-map - Live seat availability for a show
	r.Get("/api/shows/{id}/seat-map", showHandler.GetSeatMap)

	// POST /api/admin/shows/{id}/cancel - Cancel a show and queue compensation
	r.Post("/api/admin/shows/{id}/cancel", showHandler.CancelShow)
}
