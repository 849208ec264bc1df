package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type NotificationRepository interface {
	CreateBatch(ctx context.Context, q database.Queryer, notifications []*entity.Notification) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Notification, error)

	// FindDuePending returns pending notifications whose next_attempt_at has
	// arrived (or was never set), oldest due first.
	FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.Notification, error)

	MarkSent(ctx context.Context, id uuid.UUID, externalID *string) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error

	// MarkRescheduled pushes next_attempt_at forward without burning an
	// attempt. Used when a notification is picked up before it is actually due
	// for delivery, e.g. a kitchen prep trigger ahead of its prep time.
	MarkRescheduled(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, q database.Queryer, notifications []*entity.Notification) error {
	query := `
		INSERT INTO notifications (id, booking_id, channel, template, recipient, payload, status,
		                           attempts, max_attempts, next_attempt_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, n := range notifications {
		_, err := q.Exec(ctx, query,
			n.ID,
			n.BookingID,
			n.Channel,
			n.Template,
			n.Recipient,
			n.Payload,
			n.Status,
			n.Attempts,
			n.MaxAttempts,
			n.NextAttemptAt,
			n.CreatedAt,
			n.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create notification",
				zap.Error(err),
				zap.String("booking_id", n.BookingID.String()),
				zap.String("template", n.Template),
			)
			return fmt.Errorf("create notification %s: %w", n.Template, err)
		}
	}

	return nil
}

func (r *notificationRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Notification, error) {
	query := `
		SELECT id, booking_id, channel, template, recipient, payload, status,
		       attempts, max_attempts, next_attempt_at, external_id, last_error, sent_at,
		       created_at, updated_at
		FROM notifications
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find notifications by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find notifications by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *notificationRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, booking_id, channel, template, recipient, payload, status,
		       attempts, max_attempts, next_attempt_at, external_id, last_error, sent_at,
		       created_at, updated_at
		FROM notifications
		WHERE status = 'PENDING' AND (next_attempt_at IS NULL OR next_attempt_at <= $1)
		ORDER BY next_attempt_at NULLS FIRST, created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to find due pending notifications", zap.Error(err))
		return nil, fmt.Errorf("find due pending notifications: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *notificationRepository) scanRows(rows pgx.Rows) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.BookingID,
			&n.Channel,
			&n.Template,
			&n.Recipient,
			&n.Payload,
			&n.Status,
			&n.Attempts,
			&n.MaxAttempts,
			&n.NextAttemptAt,
			&n.ExternalID,
			&n.LastError,
			&n.SentAt,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID, externalID *string) error {
	query := `
		UPDATE notifications
		SET status = 'SENT', external_id = $2, sent_at = NOW(), attempts = attempts + 1,
		    last_error = NULL, next_attempt_at = NULL, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id, externalID)
	if err != nil {
		r.log.Error("Failed to mark notification sent",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s sent: %w", id.String(), err)
	}

	return nil
}

func (r *notificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error {
	status := entity.NotificationStatusPending
	next := &nextAttemptAt
	if exhausted {
		status = entity.NotificationStatusFailed
		next = nil
	}

	query := `
		UPDATE notifications
		SET status = $2, attempts = $3, next_attempt_at = $4, last_error = $5, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id, status, attempts, next, lastError)
	if err != nil {
		r.log.Error("Failed to mark notification retry",
			zap.Error(err),
			zap.String("notification_id", id.String()),
			zap.Int("attempts", attempts),
		)
		return fmt.Errorf("mark notification %s retry: %w", id.String(), err)
	}

	return nil
}

func (r *notificationRepository) MarkRescheduled(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error {
	query := `
		UPDATE notifications
		SET next_attempt_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	_, err := r.db.Exec(ctx, query, id, nextAttemptAt)
	if err != nil {
		r.log.Error("Failed to reschedule notification",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("reschedule notification %s: %w", id.String(), err)
	}

	return nil
}
