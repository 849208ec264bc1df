package response

import "time"

type BookingShowResponse struct {
	ID         string     `json:"id"`
	MovieTitle string     `json:"movieTitle"`
	StartsAt   time.Time  `json:"startsAt"`
	IntervalAt *time.Time `json:"intervalAt"`
	Status     string     `json:"status"`
}

type BookingSeatResponse struct {
	ShowSeatID string  `json:"showSeatId"`
	SeatID     string  `json:"seatId"`
	RowLabel   string  `json:"rowLabel"`
	SeatNumber int     `json:"seatNumber"`
	Price      float64 `json:"price"`
}

type PaymentResponse struct {
	ID                string     `json:"id"`
	Provider          string     `json:"provider"`
	ProviderReference string     `json:"providerReference"`
	Status            string     `json:"status"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	CapturedAt        *time.Time `json:"capturedAt"`
}

type ConcessionItemResponse struct {
	ID              string  `json:"id"`
	Sku             string  `json:"sku"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

type ConcessionOrderResponse struct {
	ID              string                   `json:"id"`
	Status          string                   `json:"status"`
	ScheduledPrepAt time.Time                `json:"scheduledPrepAt"`
	TotalAmount     float64                  `json:"totalAmount"`
	Items           []ConcessionItemResponse `json:"items"`
}

type LoyaltyEntryResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Channel   string     `json:"channel"`
	Template  string     `json:"template"`
	Recipient string     `json:"recipient"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	SentAt    *time.Time `json:"sentAt"`
}

type BookingResponse struct {
	ID                  string                   `json:"id"`
	ShowID              string                   `json:"showId"`
	HoldID              string                   `json:"holdId"`
	CustomerEmail       string                   `json:"customerEmail"`
	CustomerPhone       *string                  `json:"customerPhone"`
	Status              string                   `json:"status"`
	Subtotal            float64                  `json:"subtotal"`
	Discount            float64                  `json:"discount"`
	Total               float64                  `json:"total"`
	LoyaltyPointsEarned int                      `json:"loyaltyPointsEarned"`
	Show                *BookingShowResponse     `json:"show"`
	Seats               []BookingSeatResponse    `json:"seats"`
	Payment             *PaymentResponse         `json:"payment"`
	ConcessionOrder     *ConcessionOrderResponse `json:"concessionOrder"`
	LoyaltyEntries      []LoyaltyEntryResponse   `json:"loyaltyEntries"`
	Notifications       []NotificationResponse   `json:"notifications"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

// CheckoutResult carries the booking plus whether this call replayed an
// earlier checkout of the same hold.
type CheckoutResult struct {
	Booking            *BookingResponse
	IsIdempotentReplay bool
}
