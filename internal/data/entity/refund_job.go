package entity

import (
	"time"

	"github.com/google/uuid"
)

type RefundJobStatus string

const (
	RefundJobStatusPending   RefundJobStatus = "PENDING"
	RefundJobStatusProcessed RefundJobStatus = "PROCESSED"
	RefundJobStatusFailed    RefundJobStatus = "FAILED"
)

type RefundJob struct {
	Base
	ShowID            uuid.UUID       `db:"show_id"`
	BookingID         uuid.UUID       `db:"booking_id"` // unique: one refund job per booking
	AmountCents       int64           `db:"amount_cents"`
	ProviderReference *string         `db:"provider_reference"`
	Status            RefundJobStatus `db:"status"`
	Attempts          int             `db:"attempts"`
	MaxAttempts       int             `db:"max_attempts"`
	NextAttemptAt     *time.Time      `db:"next_attempt_at"`
	ProcessedAt       *time.Time      `db:"processed_at"`
	LastError         *string         `db:"last_error"`
}

// RefundJobDetail joins a refund job with the payment fields the processor
// needs: the captured provider reference and currency, when a payment exists.
type RefundJobDetail struct {
	RefundJob
	PaymentReference *string
	PaymentCurrency  *string
	HasPayment       bool
}
