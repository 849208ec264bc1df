package response

import "time"

type AuditoriumResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type SeatMapShowResponse struct {
	ID         string              `json:"id"`
	MovieTitle string              `json:"movieTitle"`
	StartsAt   time.Time           `json:"startsAt"`
	IntervalAt *time.Time          `json:"intervalAt"`
	Status     string              `json:"status"`
	IsBookable bool                `json:"isBookable"`
	Auditorium *AuditoriumResponse `json:"auditorium"`
}

type SeatMapSeatResponse struct {
	ShowSeatID string  `json:"showSeatId"`
	SeatID     string  `json:"seatId"`
	RowLabel   string  `json:"rowLabel"`
	SeatNumber int     `json:"seatNumber"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
}

type SeatMapResponse struct {
	Show  SeatMapShowResponse   `json:"show"`
	Seats []SeatMapSeatResponse `json:"seats"`
}

type CancelShowResponse struct {
	ShowID           string `json:"showId"`
	Status           string `json:"status"`
	AlreadyCancelled bool   `json:"alreadyCancelled"`
	TotalBookings    int    `json:"totalBookings"`
	TotalTickets     int    `json:"totalTickets"`
	SmsQueued        int    `json:"smsQueued"`
	RefundJobsQueued int    `json:"refundJobsQueued"`
}
