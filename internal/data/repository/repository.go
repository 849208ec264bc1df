package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Show         ShowRepository
	ShowSeat     ShowSeatRepository
	Hold         HoldRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Concession   ConcessionRepository
	ComboRule    ComboRuleRepository
	Loyalty      LoyaltyRepository
	Notification NotificationRepository
	RefundJob    RefundJobRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Show:         NewShowRepository(db, log),
		ShowSeat:     NewShowSeatRepository(db, log),
		Hold:         NewHoldRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Concession:   NewConcessionRepository(db, log),
		ComboRule:    NewComboRuleRepository(db, log),
		Loyalty:      NewLoyaltyRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		RefundJob:    NewRefundJobRepository(db, log),
	}
}
