package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConcessionOrderStatus string

const (
	ConcessionOrderStatusPending   ConcessionOrderStatus = "PENDING"
	ConcessionOrderStatusPreparing ConcessionOrderStatus = "PREPARING"
	ConcessionOrderStatusCancelled ConcessionOrderStatus = "CANCELLED"
)

type ConcessionOrder struct {
	Base
	BookingID       uuid.UUID             `db:"booking_id"`
	Status          ConcessionOrderStatus `db:"status"`
	ScheduledPrepAt time.Time             `db:"scheduled_prep_at"`
	TotalCents      int64                 `db:"total_cents"`
}

type ConcessionItem struct {
	BaseSimple
	OrderID         uuid.UUID `db:"order_id"`
	Sku             string    `db:"sku"`
	Name            string    `db:"name"`
	Quantity        int       `db:"quantity"`
	UnitPriceCents  int64     `db:"unit_price_cents"`
	DiscountPercent int64     `db:"discount_percent"`
}
