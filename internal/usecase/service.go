package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/internal/lock"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Hold     HoldService
	Checkout CheckoutService
	Show     ShowService
	Loyalty  LoyaltyService
	Outbox   OutboxService
	Refund   RefundService
}

func NewService(
	repo *repository.Repository,
	db database.PgxIface,
	locker lock.SeatLocker,
	clients *gateway.Clients,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	holds := NewHoldService(repo, db, locker, config.Hold, log)

	return &Service{
		Hold:     holds,
		Checkout: NewCheckoutService(repo, db, locker, clients.Payment, clients.Kitchen, holds, config.Loyalty, config.Outbox, log),
		Show:     NewShowService(repo, db, config.Refund, config.Outbox, log),
		Loyalty:  NewLoyaltyService(repo, log),
		Outbox:   NewOutboxService(repo, clients.Email, clients.SMS, clients.Kitchen, config.Outbox, log),
		Refund:   NewRefundService(repo, db, clients.Refund, config.Refund, log),
	}
}
