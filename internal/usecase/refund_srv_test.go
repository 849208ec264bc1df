package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func refundServiceWith(jobs *mockRefundJobRepo, refund *mockRefundGateway) *refundService {
	return &refundService{
		repo:      &repository.Repository{RefundJob: jobs},
		refund:    refund,
		refundCfg: utils.RefundConfig{BatchSize: 50, MaxAttempts: 5},
		log:       zap.NewNop(),
	}
}

func refundJobDetail(attempts int, jobRef, paymentRef *string) *entity.RefundJobDetail {
	detail := &entity.RefundJobDetail{
		RefundJob: entity.RefundJob{
			ShowID:            uuid.New(),
			BookingID:         uuid.New(),
			AmountCents:       50000,
			ProviderReference: jobRef,
			Status:            entity.RefundJobStatusPending,
			Attempts:          attempts,
			MaxAttempts:       5,
		},
		PaymentReference: paymentRef,
		HasPayment:       paymentRef != nil,
	}
	detail.ID = uuid.New()
	return detail
}

func TestProcessRefundBatch_MissingProviderReference(t *testing.T) {
	ctx := context.Background()
	jobs := new(mockRefundJobRepo)
	refund := new(mockRefundGateway)
	service := refundServiceWith(jobs, refund)

	job := refundJobDetail(0, nil, nil)
	jobs.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.RefundJobDetail{job}, nil)
	jobs.On("MarkRetry", ctx, job.ID, 1, mock.AnythingOfType("time.Time"), "Missing provider reference for refund", false).
		Return(nil)

	processed, err := service.ProcessRefundBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	jobs.AssertExpectations(t)
	refund.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestProcessRefundBatch_FallsBackToPaymentReference(t *testing.T) {
	ctx := context.Background()
	jobs := new(mockRefundJobRepo)
	refund := new(mockRefundGateway)
	service := refundServiceWith(jobs, refund)

	paymentRef := "PAY-abc"
	job := refundJobDetail(0, nil, &paymentRef)
	jobs.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.RefundJobDetail{job}, nil)
	// Provider declines so the settlement transaction is never reached; the
	// fallback reference and the job-scoped idempotency key still must be the
	// ones sent to the provider.
	refund.On("Refund", ctx, gateway.RefundRequest{
		BookingID:         job.BookingID,
		ShowID:            job.ShowID,
		ProviderReference: "PAY-abc",
		AmountCents:       50000,
		Currency:          defaultCurrency,
		IdempotencyKey:    "refund-job-" + job.ID.String(),
	}).Return("", errors.New("provider timeout"))
	jobs.On("MarkRetry", ctx, job.ID, 1, mock.AnythingOfType("time.Time"), "provider timeout", false).
		Return(nil)

	processed, err := service.ProcessRefundBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	refund.AssertExpectations(t)
}

func TestProcessRefundBatch_SettlesAfterProviderSuccess(t *testing.T) {
	ctx := context.Background()
	jobs := new(mockRefundJobRepo)
	bookings := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	refund := new(mockRefundGateway)
	tx := &stubTx{}
	service := &refundService{
		repo:      &repository.Repository{RefundJob: jobs, Booking: bookings, Payment: payments},
		db:        &stubDB{tx: tx},
		refund:    refund,
		refundCfg: utils.RefundConfig{BatchSize: 50, MaxAttempts: 5},
		log:       zap.NewNop(),
	}

	providerRef := "PAY-abc"
	job := refundJobDetail(0, &providerRef, &providerRef)
	jobs.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.RefundJobDetail{job}, nil)
	refund.On("Refund", ctx, gateway.RefundRequest{
		BookingID:         job.BookingID,
		ShowID:            job.ShowID,
		ProviderReference: "PAY-abc",
		AmountCents:       50000,
		Currency:          defaultCurrency,
		IdempotencyKey:    "refund-job-" + job.ID.String(),
	}).Return("REF-1", nil)
	jobs.On("MarkProcessed", ctx, tx, job.ID, "PAY-abc").Return(nil)
	bookings.On("MarkRefunded", ctx, tx, job.BookingID).Return(true, nil)
	payments.On("MarkRefunded", ctx, tx, job.BookingID).Return(true, nil)

	processed, err := service.ProcessRefundBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.True(t, tx.committed)
	jobs.AssertExpectations(t)
	bookings.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestProcessRefundBatch_BackoffUsesRefundCap(t *testing.T) {
	ctx := context.Background()
	jobs := new(mockRefundJobRepo)
	refund := new(mockRefundGateway)
	service := refundServiceWith(jobs, refund)

	providerRef := "PAY-abc"
	now := time.Now().UTC()

	// Attempt 7: 2^7 = 128s exceeds the 120s cap.
	job := refundJobDetail(6, &providerRef, nil)
	job.MaxAttempts = 10
	jobs.On("FindDuePending", ctx, mock.AnythingOfType("time.Time"), 50).
		Return([]*entity.RefundJobDetail{job}, nil)
	refund.On("Refund", ctx, mock.AnythingOfType("gateway.RefundRequest")).
		Return("", errors.New("provider timeout"))
	jobs.On("MarkRetry", ctx, job.ID, 7, mock.MatchedBy(func(next time.Time) bool {
		delay := next.Sub(now)
		return delay >= 115*time.Second && delay <= 125*time.Second
	}), "provider timeout", false).Return(nil)

	processed, err := service.ProcessRefundBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	jobs.AssertExpectations(t)
}
