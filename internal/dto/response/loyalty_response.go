package response

import "time"

type LoyaltyTransactionResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	BookingID *string   `json:"bookingId"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoyaltyProfileResponse struct {
	CustomerEmail      string                       `json:"customerEmail"`
	BalancePoints      int                          `json:"balancePoints"`
	EarnedPoints       int                          `json:"earnedPoints"`
	RedeemedPoints     int                          `json:"redeemedPoints"`
	AdjustmentPoints   int                          `json:"adjustmentPoints"`
	RecentTransactions []LoyaltyTransactionResponse `json:"recentTransactions"`
}
