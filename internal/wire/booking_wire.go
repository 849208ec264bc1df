package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/checkout - Convert a hold into a confirmed booking
	r.Post("/api/checkout", bookingHandler.Checkout)

	// GET /api/bookings/{id} - Full booking details
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
}
