package entity

import (
	"strconv"

	"github.com/google/uuid"
)

type ShowSeatStatus string

const (
	ShowSeatStatusAvailable ShowSeatStatus = "AVAILABLE"
	ShowSeatStatusHeld      ShowSeatStatus = "HELD"
	ShowSeatStatusBooked    ShowSeatStatus = "BOOKED"
)

type ShowSeat struct {
	Base
	ShowID     uuid.UUID      `db:"show_id"`
	SeatID     uuid.UUID      `db:"seat_id"`
	Status     ShowSeatStatus `db:"status"`
	PriceCents int64          `db:"price_cents"`
}

// ShowSeatDetail joins a show seat with its physical seat coordinates.
type ShowSeatDetail struct {
	ShowSeat
	RowLabel   string `db:"row_label"`
	SeatNumber int    `db:"seat_number"`
}

// Label renders the human seat label, e.g. "B7".
func (d *ShowSeatDetail) Label() string {
	return d.RowLabel + strconv.Itoa(d.SeatNumber)
}
