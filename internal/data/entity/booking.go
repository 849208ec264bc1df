package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusFailed    BookingStatus = "FAILED"
	BookingStatusRefunded  BookingStatus = "REFUNDED"
)

type Booking struct {
	Base
	ShowID              uuid.UUID     `db:"show_id"`
	HoldID              uuid.UUID     `db:"hold_id"` // unique: at most one booking per hold
	CustomerEmail       string        `db:"customer_email"`
	CustomerPhone       *string       `db:"customer_phone"`
	Status              BookingStatus `db:"status"`
	SubtotalCents       int64         `db:"subtotal_cents"`
	DiscountCents       int64         `db:"discount_cents"`
	TotalCents          int64         `db:"total_cents"`
	LoyaltyPointsEarned int           `db:"loyalty_points_earned"`
}

type BookingSeat struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	ShowSeatID uuid.UUID `db:"show_seat_id"`
	PriceCents int64     `db:"price_cents"`
}

// BookingSeatDetail joins a booked seat snapshot with seat coordinates.
type BookingSeatDetail struct {
	BookingSeat
	SeatID     uuid.UUID `db:"seat_id"`
	RowLabel   string    `db:"row_label"`
	SeatNumber int       `db:"seat_number"`
}

// ConfirmedBookingSummary carries the fields show cancellation needs to queue
// compensation (notifications and refunds) for every confirmed booking.
type ConfirmedBookingSummary struct {
	BookingID         uuid.UUID
	CustomerEmail     string
	TotalCents        int64
	SeatCount         int
	ProviderReference *string
}
