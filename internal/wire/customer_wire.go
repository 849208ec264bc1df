package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler) {
	// GET /api/customers/{email}/loyalty - Loyalty balance and recent ledger
	r.Get("/api/customers/{email}/loyalty", customerHandler.GetLoyaltyProfile)
}
