package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notificationBackoffCapSeconds bounds the exponential retry delay for outbox
// notifications.
const notificationBackoffCapSeconds = 60

const fallbackSMSMessage = "Your movie booking has an important update."

type OutboxService interface {
	// ProcessOutboxBatch delivers due pending notifications and returns how
	// many were sent. Failures are retried with exponential backoff until
	// max_attempts, then parked as FAILED.
	ProcessOutboxBatch(ctx context.Context) (int, error)
}

type outboxService struct {
	repo      *repository.Repository
	email     gateway.EmailSender
	sms       gateway.SMSSender
	kitchen   gateway.KitchenPublisher
	outboxCfg utils.OutboxConfig
	log       *zap.Logger
}

func NewOutboxService(
	repo *repository.Repository,
	email gateway.EmailSender,
	sms gateway.SMSSender,
	kitchen gateway.KitchenPublisher,
	outboxCfg utils.OutboxConfig,
	log *zap.Logger,
) OutboxService {
	return &outboxService{
		repo:      repo,
		email:     email,
		sms:       sms,
		kitchen:   kitchen,
		outboxCfg: outboxCfg,
		log:       log.With(zap.String("service", "outbox")),
	}
}

func (s *outboxService) ProcessOutboxBatch(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := s.repo.Notification.FindDuePending(ctx, now, s.outboxCfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, notification := range due {
		delivered, err := s.dispatch(ctx, notification, now)
		if err != nil {
			s.retry(ctx, notification, now, err)
			continue
		}
		if delivered {
			sent++
		}
	}

	return sent, nil
}

// dispatch routes one notification by template. A false return with nil error
// means the notification was rescheduled, not delivered.
func (s *outboxService) dispatch(ctx context.Context, notification *entity.Notification, now time.Time) (bool, error) {
	switch notification.Template {
	case entity.TemplateBookingTicket:
		externalID, err := s.sendTicketEmail(ctx, notification)
		if err != nil {
			return false, err
		}
		return true, s.markSent(ctx, notification, externalID)

	case entity.TemplateShowCancelledSMS:
		externalID, err := s.sendCancellationSMS(ctx, notification)
		if err != nil {
			return false, err
		}
		return true, s.markSent(ctx, notification, externalID)

	case entity.TemplateKitchenPrepTrigger:
		return s.dispatchKitchenPrep(ctx, notification, now)

	default:
		return false, fmt.Errorf("unsupported notification template %s", notification.Template)
	}
}

func (s *outboxService) sendTicketEmail(ctx context.Context, notification *entity.Notification) (string, error) {
	var payload ticketPayload
	if err := json.Unmarshal(notification.Payload, &payload); err != nil {
		return "", fmt.Errorf("unmarshal ticket payload: %w", err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, notification.BookingID)
	if err != nil {
		return "", err
	}
	if booking == nil {
		return "", fmt.Errorf("booking %s not found for ticket email", notification.BookingID.String())
	}

	show, err := s.repo.Show.FindByID(ctx, booking.ShowID)
	if err != nil {
		return "", err
	}
	if show == nil {
		return "", fmt.Errorf("show %s not found for ticket email", booking.ShowID.String())
	}

	seats, err := s.repo.Booking.FindSeatDetails(ctx, booking.ID)
	if err != nil {
		return "", err
	}

	ticketSeats := make([]ticketSeat, 0, len(seats))
	for _, seat := range seats {
		ticketSeats = append(ticketSeats, ticketSeat{
			RowLabel:   seat.RowLabel,
			SeatNumber: seat.SeatNumber,
		})
	}

	artifact, err := buildTicketEmailArtifact(ticketContext{
		BookingID:     booking.ID.String(),
		ShowID:        show.ID.String(),
		MovieTitle:    show.MovieTitle,
		StartsAt:      show.StartsAt,
		CustomerEmail: booking.CustomerEmail,
		Seats:         ticketSeats,
	})
	if err != nil {
		return "", err
	}

	return s.email.Send(ctx, gateway.EmailMessage{
		To:                 notification.Recipient,
		Subject:            artifact.Subject,
		Text:               artifact.Text,
		HTML:               artifact.HTML,
		AttachmentFilename: artifact.AttachmentFilename,
		AttachmentBase64:   artifact.AttachmentBase64,
		AttachmentMimeType: "application/pdf",
		IdempotencyKey:     "notification-" + notification.ID.String(),
	})
}

func (s *outboxService) sendCancellationSMS(ctx context.Context, notification *entity.Notification) (string, error) {
	var payload showCancelledPayload
	if err := json.Unmarshal(notification.Payload, &payload); err != nil {
		return "", fmt.Errorf("unmarshal show cancelled payload: %w", err)
	}

	message := payload.Message
	if message == "" {
		message = fallbackSMSMessage
	}

	return s.sms.Send(ctx, notification.Recipient, message, "notification-"+notification.ID.String())
}

func (s *outboxService) dispatchKitchenPrep(ctx context.Context, notification *entity.Notification, now time.Time) (bool, error) {
	var payload kitchenPayload
	if err := json.Unmarshal(notification.Payload, &payload); err != nil {
		return false, fmt.Errorf("unmarshal kitchen payload: %w", err)
	}

	// Picked up ahead of prep time: push it back without burning an attempt.
	if payload.PrepAt.After(now) {
		if err := s.repo.Notification.MarkRescheduled(ctx, notification.ID, payload.PrepAt); err != nil {
			return false, err
		}
		return false, nil
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return false, fmt.Errorf("parse order ID in kitchen payload: %w", err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, notification.BookingID)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, fmt.Errorf("booking %s not found for kitchen prep", notification.BookingID.String())
	}

	externalID, err := s.kitchen.PublishPrep(ctx, gateway.KitchenPrepEvent{
		OrderID:   orderID,
		BookingID: booking.ID,
		ShowID:    booking.ShowID,
		PrepAt:    payload.PrepAt,
	})
	if err != nil {
		return false, err
	}

	if _, err := s.repo.Concession.MarkPreparing(ctx, orderID); err != nil {
		return false, err
	}

	return true, s.markSent(ctx, notification, externalID)
}

func (s *outboxService) markSent(ctx context.Context, notification *entity.Notification, externalID string) error {
	var external *string
	if externalID != "" {
		external = &externalID
	}
	return s.repo.Notification.MarkSent(ctx, notification.ID, external)
}

func (s *outboxService) retry(ctx context.Context, notification *entity.Notification, now time.Time, cause error) {
	attempts := notification.Attempts + 1
	exhausted := attempts >= notification.MaxAttempts
	nextAttemptAt := now.Add(retryDelay(attempts, notificationBackoffCapSeconds))

	s.log.Warn("Notification delivery failed",
		zap.Error(cause),
		zap.String("notification_id", notification.ID.String()),
		zap.String("template", notification.Template),
		zap.Int("attempts", attempts),
		zap.Bool("exhausted", exhausted),
	)

	if err := s.repo.Notification.MarkRetry(ctx, notification.ID, attempts, nextAttemptAt, cause.Error(), exhausted); err != nil {
		s.log.Error("Failed to record notification retry",
			zap.Error(err),
			zap.String("notification_id", notification.ID.String()),
		)
	}
}
