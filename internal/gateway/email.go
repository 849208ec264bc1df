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

// EmailMessage is one outbound email, optionally carrying a base64 attachment.
type EmailMessage struct {
	To                 string
	Subject            string
	Text               string
	HTML               string
	AttachmentFilename string
	AttachmentBase64   string
	AttachmentMimeType string
	IdempotencyKey     string
}

// EmailSender delivers one email and returns the provider message ID for
// audit.
type EmailSender interface {
	Send(ctx context.Context, message EmailMessage) (string, error)
}

type emailSender struct {
	apiKey     string
	fromEmail  string
	httpClient *http.Client
	log        *zap.Logger
}

func NewEmailSender(config utils.EmailConfig, log *zap.Logger) EmailSender {
	return &emailSender{
		apiKey:    config.APIKey,
		fromEmail: config.FromEmail,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With(zap.String("gateway", "email")),
	}
}

type emailSendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`

	AttachmentFilename string `json:"attachment_filename,omitempty"`
	AttachmentBase64   string `json:"attachment_base64,omitempty"`
	AttachmentMimeType string `json:"attachment_mime_type,omitempty"`
}

type emailSendResponse struct {
	MessageID string `json:"message_id"`
}

func (s *emailSender) Send(ctx context.Context, message EmailMessage) (string, error) {
	// No API key means local/dev mode: pretend delivery succeeded.
	if s.apiKey == "" {
		messageID := "email-mock-" + uuid.NewString()
		s.log.Info("Email delivery mocked",
			zap.String("recipient", message.To),
			zap.String("subject", message.Subject),
			zap.String("message_id", messageID),
		)
		return messageID, nil
	}

	body, err := json.Marshal(emailSendRequest{
		From:               s.fromEmail,
		To:                 message.To,
		Subject:            message.Subject,
		Text:               message.Text,
		HTML:               message.HTML,
		AttachmentFilename: message.AttachmentFilename,
		AttachmentBase64:   message.AttachmentBase64,
		AttachmentMimeType: message.AttachmentMimeType,
	})
	if err != nil {
		return "", fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.sendgrid.com/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if message.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", message.IdempotencyKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send email to %s: %w", message.To, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var sendResp emailSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		// SendGrid answers 202 with an empty body; fall back to a local ID.
		sendResp.MessageID = "email-" + uuid.NewString()
	}

	return sendResp.MessageID, nil
}
