package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock payment methods accepted by the sandbox provider.
const (
	MethodMockCard       = "MOCK_CARD"
	MethodMockUPI        = "MOCK_UPI"
	MethodMockNetbanking = "MOCK_NETBANKING"
	MethodMockFail       = "MOCK_FAIL"
)

type CaptureRequest struct {
	BookingID     uuid.UUID
	HoldID        uuid.UUID
	PaymentMethod string
	AmountCents   int64
	Currency      string
	CustomerEmail string

	// IdempotencyKey makes a retried capture a no-op at the provider. One key
	// per hold: a retry after a crash must not charge the customer twice.
	IdempotencyKey string
}

type CaptureResult struct {
	Captured      bool
	Reference     string
	FailureReason string
	CapturedAt    time.Time
}

// PaymentGateway captures funds for a checkout. Capture is synchronous: the
// caller learns immediately whether the charge went through.
type PaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}

// mockPaymentGateway simulates a provider: every MOCK_* method captures
// instantly except MOCK_FAIL, which is always declined.
type mockPaymentGateway struct {
	log *zap.Logger
}

func NewMockPaymentGateway(log *zap.Logger) PaymentGateway {
	return &mockPaymentGateway{
		log: log.With(zap.String("gateway", "payment")),
	}
}

func (g *mockPaymentGateway) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	switch req.PaymentMethod {
	case MethodMockCard, MethodMockUPI, MethodMockNetbanking:
		result := &CaptureResult{
			Captured:   true,
			Reference:  "PAY-" + uuid.NewString(),
			CapturedAt: time.Now().UTC(),
		}
		g.log.Info("Payment captured",
			zap.String("booking_id", req.BookingID.String()),
			zap.String("hold_id", req.HoldID.String()),
			zap.String("method", req.PaymentMethod),
			zap.Int64("amount_cents", req.AmountCents),
			zap.String("reference", result.Reference),
			zap.String("idempotency_key", req.IdempotencyKey),
		)
		return result, nil
	case MethodMockFail:
		g.log.Warn("Payment declined",
			zap.String("booking_id", req.BookingID.String()),
			zap.Int64("amount_cents", req.AmountCents),
		)
		return &CaptureResult{
			Captured:      false,
			FailureReason: "card declined by issuer",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported payment method %s", req.PaymentMethod)
	}
}
