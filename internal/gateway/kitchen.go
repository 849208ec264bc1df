package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// KitchenPrepEvent tells the kitchen to start preparing a concession order so
// it is ready at the interval break.
type KitchenPrepEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	BookingID uuid.UUID `json:"booking_id"`
	ShowID    uuid.UUID `json:"show_id"`
	PrepAt    time.Time `json:"prep_at"`
}

// KitchenPublisher pushes prep events onto the kitchen work queue.
type KitchenPublisher interface {
	PublishPrep(ctx context.Context, event KitchenPrepEvent) (string, error)
}

type kitchenPublisher struct {
	url       string
	queueName string
	log       *zap.Logger
}

func NewKitchenPublisher(config utils.AMQPConfig, log *zap.Logger) KitchenPublisher {
	return &kitchenPublisher{
		url:       config.URL,
		queueName: config.KitchenQueue,
		log:       log.With(zap.String("gateway", "kitchen")),
	}
}

// PublishPrep dials per publish. Prep events are rare (a handful per show) so
// the connection overhead is irrelevant next to keeping reconnect logic out.
func (p *kitchenPublisher) PublishPrep(ctx context.Context, event KitchenPrepEvent) (string, error) {
	if p.url == "" {
		messageID := "kitchen-mock-" + uuid.NewString()
		p.log.Info("Kitchen prep event mocked",
			zap.String("order_id", event.OrderID.String()),
			zap.String("message_id", messageID),
		)
		return messageID, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return "", fmt.Errorf("dial amqp: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return "", fmt.Errorf("open amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("declare queue %s: %w", p.queueName, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal kitchen prep event: %w", err)
	}

	messageID := uuid.NewString()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, pub); err != nil {
		return "", fmt.Errorf("publish kitchen prep event: %w", err)
	}

	return messageID, nil
}
