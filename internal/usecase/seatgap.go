package usecase

import (
	"sort"

	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
)

type rowSeat struct {
	seatNumber int
	blocked    bool
}

// hasSingleSeatGapInRow reports whether a free seat would be stranded between
// two blocked seats. Seats at the ends of the row are allowed to stay single.
func hasSingleSeatGapInRow(seats []rowSeat) bool {
	sorted := make([]rowSeat, len(seats))
	copy(sorted, seats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seatNumber < sorted[j].seatNumber })

	for i := 1; i < len(sorted)-1; i++ {
		if sorted[i].blocked {
			continue
		}
		if sorted[i-1].blocked && sorted[i+1].blocked {
			return true
		}
	}

	return false
}

// findSingleSeatGapRow checks the whole auditorium row by row as if the
// selected seats were already taken, and returns the first row label where the
// selection would strand a single free seat.
func findSingleSeatGapRow(allSeats []*entity.ShowSeatDetail, selected map[uuid.UUID]struct{}) (string, bool) {
	rows := make(map[string][]rowSeat)
	var rowOrder []string

	for _, seat := range allSeats {
		_, isSelected := selected[seat.ID]
		blocked := seat.Status != entity.ShowSeatStatusAvailable || isSelected

		if _, ok := rows[seat.RowLabel]; !ok {
			rowOrder = append(rowOrder, seat.RowLabel)
		}
		rows[seat.RowLabel] = append(rows[seat.RowLabel], rowSeat{
			seatNumber: seat.SeatNumber,
			blocked:    blocked,
		})
	}

	sort.Strings(rowOrder)
	for _, rowLabel := range rowOrder {
		if hasSingleSeatGapInRow(rows[rowLabel]) {
			return rowLabel, true
		}
	}

	return "", false
}
