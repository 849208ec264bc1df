package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "CAPTURED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	Base
	BookingID         uuid.UUID     `db:"booking_id"` // unique: one payment per booking
	Provider          string        `db:"provider"`
	ProviderReference string        `db:"provider_reference"`
	Status            PaymentStatus `db:"status"`
	AmountCents       int64         `db:"amount_cents"`
	Currency          string        `db:"currency"`
	CapturedAt        *time.Time    `db:"captured_at"`
}
