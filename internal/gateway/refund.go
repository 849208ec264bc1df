package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundRequest struct {
	BookingID         uuid.UUID
	ShowID            uuid.UUID
	ProviderReference string
	AmountCents       int64
	Currency          string

	// IdempotencyKey is stable per refund job: a crash between a successful
	// provider call and our settlement must not refund twice on the next poll.
	IdempotencyKey string
}

// RefundGateway reverses a captured payment at the provider and returns the
// provider refund reference.
type RefundGateway interface {
	Refund(ctx context.Context, req RefundRequest) (string, error)
}

type refundGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewRefundGateway(config utils.RefundGatewayConfig, log *zap.Logger) RefundGateway {
	return &refundGateway{
		baseURL: config.URL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.With(zap.String("gateway", "refund")),
	}
}

type refundProviderRequest struct {
	PaymentReference string `json:"payment_reference"`
	BookingID        string `json:"booking_id"`
	ShowID           string `json:"show_id"`
	AmountCents      int64  `json:"amount_cents"`
	Currency         string `json:"currency"`
}

type refundResponse struct {
	RefundReference string `json:"refund_reference"`
}

func (g *refundGateway) Refund(ctx context.Context, refund RefundRequest) (string, error) {
	if g.baseURL == "" {
		refundRef := "REF-" + uuid.NewString()
		g.log.Info("Refund mocked",
			zap.String("payment_reference", refund.ProviderReference),
			zap.Int64("amount_cents", refund.AmountCents),
			zap.String("idempotency_key", refund.IdempotencyKey),
			zap.String("refund_reference", refundRef),
		)
		return refundRef, nil
	}

	body, err := json.Marshal(refundProviderRequest{
		PaymentReference: refund.ProviderReference,
		BookingID:        refund.BookingID.String(),
		ShowID:           refund.ShowID.String(),
		AmountCents:      refund.AmountCents,
		Currency:         refund.Currency,
	})
	if err != nil {
		return "", fmt.Errorf("marshal refund request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build refund request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if refund.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", refund.IdempotencyKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refund payment %s: %w", refund.ProviderReference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("refund provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var refundResp refundResponse
	if err := json.NewDecoder(resp.Body).Decode(&refundResp); err != nil {
		return "", fmt.Errorf("decode refund response: %w", err)
	}

	return refundResp.RefundReference, nil
}
