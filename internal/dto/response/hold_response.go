package response

import "time"

type HoldSeatResponse struct {
	ShowSeatID string  `json:"showSeatId"`
	SeatID     string  `json:"seatId"`
	RowLabel   string  `json:"rowLabel"`
	SeatNumber int     `json:"seatNumber"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
}

type HoldResponse struct {
	ID            string             `json:"id"`
	ShowID        string             `json:"showId"`
	CustomerEmail string             `json:"customerEmail"`
	Status        string             `json:"status"`
	ExpiresAt     time.Time          `json:"expiresAt"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Seats         []HoldSeatResponse `json:"seats"`
}
