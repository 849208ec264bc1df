package gateway

import (
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// Clients bundles every external integration the services depend on.
type Clients struct {
	Payment PaymentGateway
	Email   EmailSender
	SMS     SMSSender
	Refund  RefundGateway
	Kitchen KitchenPublisher
}

func NewClients(config *utils.Config, log *zap.Logger) *Clients {
	return &Clients{
		Payment: NewMockPaymentGateway(log),
		Email:   NewEmailSender(config.Email, log),
		SMS:     NewSMSSender(config.SMS, log),
		Refund:  NewRefundGateway(config.RefundGateway, log),
		Kitchen: NewKitchenPublisher(config.AMQP, log),
	}
}
