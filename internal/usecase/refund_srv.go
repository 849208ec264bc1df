package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// refundBackoffCapSeconds is higher than the notification cap: refunds talk to
// a slower provider and there is no customer waiting on the response.
const refundBackoffCapSeconds = 120

var errMissingProviderReference = errors.New("Missing provider reference for refund")

type RefundService interface {
	// ProcessRefundBatch executes due pending refund jobs against the payment
	// provider and returns how many were processed.
	ProcessRefundBatch(ctx context.Context) (int, error)
}

type refundService struct {
	repo      *repository.Repository
	db        database.PgxIface
	refund    gateway.RefundGateway
	refundCfg utils.RefundConfig
	log       *zap.Logger
}

func NewRefundService(
	repo *repository.Repository,
	db database.PgxIface,
	refund gateway.RefundGateway,
	refundCfg utils.RefundConfig,
	log *zap.Logger,
) RefundService {
	return &refundService{
		repo:      repo,
		db:        db,
		refund:    refund,
		refundCfg: refundCfg,
		log:       log.With(zap.String("service", "refund")),
	}
}

func (s *refundService) ProcessRefundBatch(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := s.repo.RefundJob.FindDuePending(ctx, now, s.refundCfg.BatchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, job := range due {
		if err := s.processJob(ctx, job); err != nil {
			s.retry(ctx, job, now, err)
			continue
		}
		processed++
	}

	return processed, nil
}

func (s *refundService) processJob(ctx context.Context, job *entity.RefundJobDetail) error {
	// The job may have been queued before a payment row existed; fall back to
	// the captured payment's reference.
	providerReference := job.ProviderReference
	if providerReference == nil || *providerReference == "" {
		providerReference = job.PaymentReference
	}
	if providerReference == nil || *providerReference == "" {
		return errMissingProviderReference
	}

	currency := defaultCurrency
	if job.PaymentCurrency != nil && *job.PaymentCurrency != "" {
		currency = *job.PaymentCurrency
	}

	refundReference, err := s.refund.Refund(ctx, gateway.RefundRequest{
		BookingID:         job.BookingID,
		ShowID:            job.ShowID,
		ProviderReference: *providerReference,
		AmountCents:       job.AmountCents,
		Currency:          currency,
		// Stable per job: a crash after provider success re-sends the same key.
		IdempotencyKey: "refund-job-" + job.ID.String(),
	})
	if err != nil {
		return err
	}

	if err := s.settleJobTx(ctx, job, *providerReference); err != nil {
		return err
	}

	s.log.Info("Refund processed",
		zap.String("refund_job_id", job.ID.String()),
		zap.String("booking_id", job.BookingID.String()),
		zap.Int64("amount_cents", job.AmountCents),
		zap.String("refund_reference", refundReference),
	)
	return nil
}

// settleJobTx records the refund outcome atomically: job PROCESSED, booking
// REFUNDED, and the payment row REFUNDED when one exists.
func (s *refundService) settleJobTx(ctx context.Context, job *entity.RefundJobDetail, providerReference string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin refund settlement transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.RefundJob.MarkProcessed(ctx, tx, job.ID, providerReference); err != nil {
		return err
	}

	if _, err := s.repo.Booking.MarkRefunded(ctx, tx, job.BookingID); err != nil {
		return err
	}

	if job.HasPayment {
		if _, err := s.repo.Payment.MarkRefunded(ctx, tx, job.BookingID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit refund settlement transaction: %w", err)
	}

	return nil
}

func (s *refundService) retry(ctx context.Context, job *entity.RefundJobDetail, now time.Time, cause error) {
	attempts := job.Attempts + 1
	exhausted := attempts >= job.MaxAttempts
	nextAttemptAt := now.Add(retryDelay(attempts, refundBackoffCapSeconds))

	s.log.Warn("Refund job failed",
		zap.Error(cause),
		zap.String("refund_job_id", job.ID.String()),
		zap.String("booking_id", job.BookingID.String()),
		zap.Int("attempts", attempts),
		zap.Bool("exhausted", exhausted),
	)

	if err := s.repo.RefundJob.MarkRetry(ctx, job.ID, attempts, nextAttemptAt, cause.Error(), exhausted); err != nil {
		s.log.Error("Failed to record refund retry",
			zap.Error(err),
			zap.String("refund_job_id", job.ID.String()),
		)
	}
}
