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

// SMSSender delivers one text message and returns the provider message ID.
// The idempotency key keeps a redelivered outbox row from texting the
// customer twice.
type SMSSender interface {
	Send(ctx context.Context, recipient, message, idempotencyKey string) (string, error)
}

type smsSender struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewSMSSender(config utils.SMSConfig, log *zap.Logger) SMSSender {
	return &smsSender{
		gatewayURL: config.GatewayURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With(zap.String("gateway", "sms")),
	}
}

type smsSendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type smsSendResponse struct {
	MessageID string `json:"message_id"`
}

func (s *smsSender) Send(ctx context.Context, recipient, message, idempotencyKey string) (string, error) {
	if s.gatewayURL == "" {
		messageID := "sms-mock-" + uuid.NewString()
		s.log.Info("SMS delivery mocked",
			zap.String("recipient", recipient),
			zap.String("idempotency_key", idempotencyKey),
			zap.String("message_id", messageID),
		)
		return messageID, nil
	}

	body, err := json.Marshal(smsSendRequest{To: recipient, Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send sms to %s: %w", recipient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var sendResp smsSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		sendResp.MessageID = "sms-" + uuid.NewString()
	}

	return sendResp.MessageID, nil
}
