package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundJobRepository interface {
	// CreateBatch inserts refund jobs, silently skipping bookings that already
	// have one (unique on booking_id). Re-running show cancellation therefore
	// never duplicates refunds.
	CreateBatch(ctx context.Context, q database.Queryer, jobs []*entity.RefundJob) error

	FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.RefundJobDetail, error)
	MarkProcessed(ctx context.Context, q database.Queryer, id uuid.UUID, providerReference string) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error
}

type refundJobRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefundJobRepository(db database.PgxIface, log *zap.Logger) RefundJobRepository {
	return &refundJobRepository{
		db:  db,
		log: log.With(zap.String("repository", "refund_job")),
	}
}

func (r *refundJobRepository) CreateBatch(ctx context.Context, q database.Queryer, jobs []*entity.RefundJob) error {
	query := `
		INSERT INTO refund_jobs (id, show_id, booking_id, amount_cents, provider_reference, status,
		                         attempts, max_attempts, next_attempt_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (booking_id) DO NOTHING
	`

	for _, job := range jobs {
		_, err := q.Exec(ctx, query,
			job.ID,
			job.ShowID,
			job.BookingID,
			job.AmountCents,
			job.ProviderReference,
			job.Status,
			job.Attempts,
			job.MaxAttempts,
			job.NextAttemptAt,
			job.CreatedAt,
			job.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create refund job",
				zap.Error(err),
				zap.String("booking_id", job.BookingID.String()),
			)
			return fmt.Errorf("create refund job for booking %s: %w", job.BookingID.String(), err)
		}
	}

	return nil
}

func (r *refundJobRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.RefundJobDetail, error) {
	query := `
		SELECT rj.id, rj.show_id, rj.booking_id, rj.amount_cents, rj.provider_reference, rj.status,
		       rj.attempts, rj.max_attempts, rj.next_attempt_at, rj.processed_at, rj.last_error,
		       rj.created_at, rj.updated_at,
		       p.provider_reference, p.currency
		FROM refund_jobs rj
		LEFT JOIN payments p ON p.booking_id = rj.booking_id
		WHERE rj.status = 'PENDING' AND (rj.next_attempt_at IS NULL OR rj.next_attempt_at <= $1)
		ORDER BY rj.next_attempt_at NULLS FIRST, rj.created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to find due pending refund jobs", zap.Error(err))
		return nil, fmt.Errorf("find due pending refund jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.RefundJobDetail
	for rows.Next() {
		var job entity.RefundJobDetail
		err := rows.Scan(
			&job.ID,
			&job.ShowID,
			&job.BookingID,
			&job.AmountCents,
			&job.ProviderReference,
			&job.Status,
			&job.Attempts,
			&job.MaxAttempts,
			&job.NextAttemptAt,
			&job.ProcessedAt,
			&job.LastError,
			&job.CreatedAt,
			&job.UpdatedAt,
			&job.PaymentReference,
			&job.PaymentCurrency,
		)
		if err != nil {
			r.log.Error("Failed to scan refund job row", zap.Error(err))
			return nil, fmt.Errorf("scan refund job row: %w", err)
		}
		job.HasPayment = job.PaymentReference != nil
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

func (r *refundJobRepository) MarkProcessed(ctx context.Context, q database.Queryer, id uuid.UUID, providerReference string) error {
	query := `
		UPDATE refund_jobs
		SET status = 'PROCESSED', attempts = attempts + 1, next_attempt_at = NULL,
		    processed_at = NOW(), provider_reference = $2, last_error = NULL, updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query, id, providerReference)
	if err != nil {
		r.log.Error("Failed to mark refund job processed",
			zap.Error(err),
			zap.String("refund_job_id", id.String()),
		)
		return fmt.Errorf("mark refund job %s processed: %w", id.String(), err)
	}

	return nil
}

func (r *refundJobRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error {
	status := entity.RefundJobStatusPending
	next := &nextAttemptAt
	if exhausted {
		status = entity.RefundJobStatusFailed
		next = nil
	}

	query := `
		UPDATE refund_jobs
		SET status = $2, attempts = $3, next_attempt_at = $4, last_error = $5, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id, status, attempts, next, lastError)
	if err != nil {
		r.log.Error("Failed to mark refund job retry",
			zap.Error(err),
			zap.String("refund_job_id", id.String()),
			zap.Int("attempts", attempts),
		)
		return fmt.Errorf("mark refund job %s retry: %w", id.String(), err)
	}

	return nil
}
