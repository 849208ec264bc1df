package entity

import (
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "ACTIVE"
	HoldStatusConverted HoldStatus = "CONVERTED"
	HoldStatusCancelled HoldStatus = "CANCELLED"
	HoldStatusExpired   HoldStatus = "EXPIRED"
)

type Hold struct {
	Base
	ShowID        uuid.UUID  `db:"show_id"`
	CustomerEmail string     `db:"customer_email"`
	Status        HoldStatus `db:"status"`
	ExpiresAt     time.Time  `db:"expires_at"`
}

type HoldSeat struct {
	BaseSimple
	HoldID     uuid.UUID `db:"hold_id"`
	ShowSeatID uuid.UUID `db:"show_seat_id"`
}
