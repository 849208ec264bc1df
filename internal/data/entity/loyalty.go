package entity

import "github.com/google/uuid"

type LoyaltyEntryType string

const (
	LoyaltyEntryTypeEarn   LoyaltyEntryType = "EARN"
	LoyaltyEntryTypeRedeem LoyaltyEntryType = "REDEEM"
	LoyaltyEntryTypeAdjust LoyaltyEntryType = "ADJUST"
)

// LoyaltyLedger is append-only; balances are derived, never stored.
type LoyaltyLedger struct {
	BaseSimple
	BookingID     *uuid.UUID       `db:"booking_id"`
	CustomerEmail string           `db:"customer_email"`
	Type          LoyaltyEntryType `db:"type"`
	Points        int              `db:"points"`
	Reason        string           `db:"reason"`
}

type LoyaltySummary struct {
	CustomerEmail    string
	BalancePoints    int
	EarnedPoints     int
	RedeemedPoints   int
	AdjustmentPoints int
}
