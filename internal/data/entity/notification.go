package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
	NotificationChannelSMS   NotificationChannel = "SMS"
	NotificationChannelQueue NotificationChannel = "QUEUE"
)

// RecipientKitchenQueue marks outbox rows addressed to the kitchen work queue
// rather than a customer.
const RecipientKitchenQueue = "KITCHEN_QUEUE"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification templates routed by the outbox dispatcher.
const (
	TemplateBookingTicket      = "BOOKING_TICKET_PDF_QR"
	TemplateShowCancelledSMS   = "SHOW_CANCELLED_SMS"
	TemplateKitchenPrepTrigger = "KITCHEN_PREP_TRIGGER"
)

// Notification is one outbox row: a pending asynchronous side effect with its
// own retry/backoff bookkeeping.
type Notification struct {
	Base
	BookingID     uuid.UUID           `db:"booking_id"`
	Channel       NotificationChannel `db:"channel"`
	Template      string              `db:"template"`
	Recipient     string              `db:"recipient"`
	Payload       []byte              `db:"payload"` // JSON
	Status        NotificationStatus  `db:"status"`
	Attempts      int                 `db:"attempts"`
	MaxAttempts   int                 `db:"max_attempts"`
	NextAttemptAt *time.Time          `db:"next_attempt_at"`
	ExternalID    *string             `db:"external_id"`
	LastError     *string             `db:"last_error"`
	SentAt        *time.Time          `db:"sent_at"`
}
