package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func outboxServiceWith(notifications *mockNotificationRepo, sms *mockSMSSender) *outboxService {
	return &outboxService{
		repo:      &repository.Repository{Notification: notifications},
		sms:       sms,
		outboxCfg: utils.OutboxConfig{BatchSize: 50, MaxAttempts: 5},
		log:       zap.NewNop(),
	}
}

func smsNotification(t *testing.T, message string, attempts int) *entity.Notification {
	t.Helper()
	body, err := json.Marshal(showCancelledPayload{
		ShowID:  uuid.NewString(),
		Reason:  "projector failure",
		Message: message,
	})
	require.NoError(t, err)

	notification := &entity.Notification{
		BookingID:   uuid.New(),
		Channel:     entity.NotificationChannelSMS,
		Template:    entity.TemplateShowCancelledSMS,
		Recipient:   "jane@example.com",
		Payload:     body,
		Status:      entity.NotificationStatusPending,
		Attempts:    attempts,
		MaxAttempts: 5,
	}
	notification.ID = uuid.New()
	return notification
}

func TestProcessOutboxBatch_SendsSMS(t *testing.T) {
	ctx := context.Background()
	notifications := new(mockNotificationRepo)
	sms := new(mockSMSSender)
	service := outboxServiceWith(notifications, sms)

	notification := smsNotification(t, "Show cancelled for booking b-1. Reason: projector failure", 0)
	notifications.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.Notification{notification}, nil)
	// The idempotency key is the notification ID so a redelivered row cannot
	// text the customer twice.
	sms.On("Send", ctx, "jane@example.com", "Show cancelled for booking b-1. Reason: projector failure", "notification-"+notification.ID.String()).
		Return("sms-123", nil)
	notifications.On("MarkSent", ctx, notification.ID, mock.MatchedBy(func(externalID *string) bool {
		return externalID != nil && *externalID == "sms-123"
	})).Return(nil)

	sent, err := service.ProcessOutboxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notifications.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestProcessOutboxBatch_SMSFallbackMessage(t *testing.T) {
	ctx := context.Background()
	notifications := new(mockNotificationRepo)
	sms := new(mockSMSSender)
	service := outboxServiceWith(notifications, sms)

	notification := smsNotification(t, "", 0)
	notifications.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.Notification{notification}, nil)
	sms.On("Send", ctx, "jane@example.com", fallbackSMSMessage, "notification-"+notification.ID.String()).Return("sms-456", nil)
	notifications.On("MarkSent", ctx, notification.ID, mock.Anything).Return(nil)

	sent, err := service.ProcessOutboxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	sms.AssertExpectations(t)
}

func TestProcessOutboxBatch_RetriesWithBackoff(t *testing.T) {
	ctx := context.Background()
	notifications := new(mockNotificationRepo)
	sms := new(mockSMSSender)
	service := outboxServiceWith(notifications, sms)

	notification := smsNotification(t, "hello", 1)
	notifications.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.Notification{notification}, nil)
	sms.On("Send", ctx, "jane@example.com", "hello", mock.AnythingOfType("string")).Return("", errors.New("provider unavailable"))
	notifications.On("MarkRetry", ctx, notification.ID, 2, mock.AnythingOfType("time.Time"), "provider unavailable", false).
		Return(nil)

	sent, err := service.ProcessOutboxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifications.AssertExpectations(t)
}

func TestProcessOutboxBatch_ExhaustedAttemptsParkAsFailed(t *testing.T) {
	ctx := context.Background()
	notifications := new(mockNotificationRepo)
	sms := new(mockSMSSender)
	service := outboxServiceWith(notifications, sms)

	// Attempt 5 of 5 fails: the notification is parked as FAILED.
	notification := smsNotification(t, "hello", 4)
	notifications.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.Notification{notification}, nil)
	sms.On("Send", ctx, "jane@example.com", "hello", mock.AnythingOfType("string")).Return("", errors.New("provider unavailable"))
	notifications.On("MarkRetry", ctx, notification.ID, 5, mock.AnythingOfType("time.Time"), "provider unavailable", true).
		Return(nil)

	sent, err := service.ProcessOutboxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifications.AssertExpectations(t)
}

func TestProcessOutboxBatch_KitchenPrepRescheduledUntilDue(t *testing.T) {
	ctx := context.Background()
	notifications := new(mockNotificationRepo)
	service := outboxServiceWith(notifications, new(mockSMSSender))

	prepAt := time.Now().UTC().Add(30 * time.Minute)
	body, err := json.Marshal(kitchenPayload{
		BookingID: uuid.NewString(),
		OrderID:   uuid.NewString(),
		PrepAt:    prepAt,
	})
	require.NoError(t, err)

	notification := &entity.Notification{
		BookingID:   uuid.New(),
		Channel:     entity.NotificationChannelQueue,
		Template:    entity.TemplateKitchenPrepTrigger,
		Recipient:   entity.RecipientKitchenQueue,
		Payload:     body,
		Status:      entity.NotificationStatusPending,
		MaxAttempts: 5,
	}
	notification.ID = uuid.New()

	notifications.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.Notification{notification}, nil)
	// Not due yet: pushed to prep time without burning an attempt. MarkRetry
	// must never be called on this path.
	notifications.On("MarkRescheduled", ctx, notification.ID, mock.MatchedBy(func(next time.Time) bool {
		return next.Equal(prepAt)
	})).Return(nil)

	sent, err := service.ProcessOutboxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifications.AssertExpectations(t)
	notifications.AssertNotCalled(t, "MarkRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
