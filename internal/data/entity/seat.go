package entity

import "github.com/google/uuid"

type Seat struct {
	Base
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	RowLabel     string    `db:"row_label"`   // A, B, C, etc.
	SeatNumber   int       `db:"seat_number"` // 1, 2, 3, etc.
}
