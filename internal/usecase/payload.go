package usecase

import "time"

// Outbox payloads. Checkout and show cancellation write them; the outbox
// dispatcher reads them back, so both sides share one set of types.

type ticketPayload struct {
	BookingID string `json:"bookingId"`
	HoldID    string `json:"holdId"`
}

type kitchenPayload struct {
	BookingID string    `json:"bookingId"`
	OrderID   string    `json:"orderId"`
	PrepAt    time.Time `json:"prepAt"`
}

type showCancelledPayload struct {
	ShowID  string `json:"showId"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
