package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func checkoutFixture(holdStatus entity.HoldStatus, showStatus entity.ShowStatus, seatStatus entity.ShowSeatStatus) (*entity.Hold, *entity.Show, []*entity.ShowSeatDetail) {
	now := time.Now().UTC()

	hold := &entity.Hold{
		Status:    holdStatus,
		ExpiresAt: now.Add(5 * time.Minute),
	}
	show := &entity.Show{Status: showStatus}

	seat := &entity.ShowSeatDetail{RowLabel: "A", SeatNumber: 1}
	seat.Status = seatStatus
	seat.PriceCents = 25000

	return hold, show, []*entity.ShowSeatDetail{seat}
}

func TestAssertHoldCanCheckout(t *testing.T) {
	now := time.Now().UTC()

	t.Run("active hold on scheduled show passes", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusActive, entity.ShowStatusScheduled, entity.ShowSeatStatusHeld)
		assert.NoError(t, assertHoldCanCheckout(hold, show, seats, now))
	})

	t.Run("converted hold is rejected", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusConverted, entity.ShowStatusScheduled, entity.ShowSeatStatusHeld)
		err := assertHoldCanCheckout(hold, show, seats, now)
		assert.True(t, apperror.HasCode(err, "HOLD_ALREADY_CONVERTED"))
	})

	t.Run("cancelled hold is rejected", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusCancelled, entity.ShowStatusScheduled, entity.ShowSeatStatusHeld)
		err := assertHoldCanCheckout(hold, show, seats, now)
		assert.True(t, apperror.HasCode(err, "HOLD_NOT_ACTIVE"))
	})

	t.Run("expired hold is rejected", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusActive, entity.ShowStatusScheduled, entity.ShowSeatStatusHeld)
		hold.ExpiresAt = now.Add(-time.Second)
		err := assertHoldCanCheckout(hold, show, seats, now)
		assert.True(t, apperror.HasCode(err, "HOLD_EXPIRED"))
	})

	t.Run("cancelled show is rejected", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusActive, entity.ShowStatusCancelled, entity.ShowSeatStatusHeld)
		err := assertHoldCanCheckout(hold, show, seats, now)
		assert.True(t, apperror.HasCode(err, "SHOW_NOT_BOOKABLE"))
	})

	t.Run("hold without seats is rejected", func(t *testing.T) {
		hold, show, _ := checkoutFixture(entity.HoldStatusActive, entity.ShowStatusScheduled, entity.ShowSeatStatusHeld)
		err := assertHoldCanCheckout(hold, show, nil, now)
		assert.True(t, apperror.HasCode(err, "EMPTY_HOLD"))
	})

	t.Run("seat no longer held is rejected", func(t *testing.T) {
		hold, show, seats := checkoutFixture(entity.HoldStatusActive, entity.ShowStatusScheduled, entity.ShowSeatStatusAvailable)
		err := assertHoldCanCheckout(hold, show, seats, now)
		assert.True(t, apperror.HasCode(err, "SEAT_STATE_CONFLICT"))
	})
}

func comboRule(minTickets int, sku string, discountPercent int64) *entity.ComboRule {
	return &entity.ComboRule{
		MinTickets:      minTickets,
		TargetSku:       sku,
		DiscountPercent: discountPercent,
		IsActive:        true,
	}
}

func TestPickComboRule(t *testing.T) {
	ctx := context.Background()
	concessions := []request.ConcessionItemRequest{
		{ItemCode: "large_popcorn", Quantity: 1},
		{ItemCode: "COKE", Quantity: 2},
	}

	t.Run("first satisfiable rule wins", func(t *testing.T) {
		comboRules := new(mockComboRuleRepo)
		service := &checkoutService{
			repo: &repository.Repository{ComboRule: comboRules},
			log:  zap.NewNop(),
		}

		// Repository orders rules most demanding first.
		comboRules.On("FindActiveForSkus", ctx, []string{"LARGE_POPCORN", "COKE"}).Return([]*entity.ComboRule{
			comboRule(4, "LARGE_POPCORN", 30),
			comboRule(2, "LARGE_POPCORN", 20),
		}, nil)

		rule, err := service.pickComboRule(ctx, concessions, 3)
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, 2, rule.MinTickets)
		assert.Equal(t, int64(20), rule.DiscountPercent)
		comboRules.AssertExpectations(t)
	})

	t.Run("no rule satisfied by ticket count", func(t *testing.T) {
		comboRules := new(mockComboRuleRepo)
		service := &checkoutService{
			repo: &repository.Repository{ComboRule: comboRules},
			log:  zap.NewNop(),
		}

		comboRules.On("FindActiveForSkus", ctx, []string{"LARGE_POPCORN", "COKE"}).Return([]*entity.ComboRule{
			comboRule(4, "LARGE_POPCORN", 30),
		}, nil)

		rule, err := service.pickComboRule(ctx, concessions, 1)
		require.NoError(t, err)
		assert.Nil(t, rule)
	})

	t.Run("no concessions skips the lookup", func(t *testing.T) {
		service := &checkoutService{
			repo: &repository.Repository{ComboRule: new(mockComboRuleRepo)},
			log:  zap.NewNop(),
		}

		rule, err := service.pickComboRule(ctx, nil, 4)
		require.NoError(t, err)
		assert.Nil(t, rule)
	})
}

func TestCheckoutBooking_SecondCheckoutReturnsSameBookingAsReplay(t *testing.T) {
	ctx := context.Background()
	bookings := new(mockBookingRepo)
	shows := new(mockShowRepo)
	payments := new(mockPaymentRepo)
	concessions := new(mockConcessionRepo)
	loyalty := new(mockLoyaltyRepo)
	notifications := new(mockNotificationRepo)
	paymentGw := new(mockPaymentGateway)

	service := &checkoutService{
		repo: &repository.Repository{
			Booking:      bookings,
			Show:         shows,
			Payment:      payments,
			Concession:   concessions,
			Loyalty:      loyalty,
			Notification: notifications,
		},
		payment: paymentGw,
		log:     zap.NewNop(),
	}

	holdID := uuid.New()
	existing := &entity.Booking{
		ShowID:        uuid.New(),
		HoldID:        holdID,
		CustomerEmail: "jane@example.com",
		Status:        entity.BookingStatusConfirmed,
		TotalCents:    50000,
	}
	existing.ID = uuid.New()

	// The hold was already converted, so the second checkout must serve the
	// first checkout's booking without touching the payment provider.
	bookings.On("FindByHoldID", ctx, holdID).Return(existing, nil)
	shows.On("FindByID", ctx, existing.ShowID).Return(nil, nil)
	bookings.On("FindSeatDetails", ctx, existing.ID).Return(nil, nil)
	payments.On("FindByBookingID", ctx, existing.ID).Return(nil, nil)
	concessions.On("FindOrderByBookingID", ctx, existing.ID).Return(nil, nil)
	loyalty.On("FindByBookingID", ctx, existing.ID).Return(nil, nil)
	notifications.On("FindByBookingID", ctx, existing.ID).Return(nil, nil)

	result, err := service.CheckoutBooking(ctx, &request.CheckoutRequest{
		HoldID:        holdID.String(),
		PaymentMethod: "MOCK_CARD",
	})
	require.NoError(t, err)
	assert.True(t, result.IsIdempotentReplay)
	assert.Equal(t, existing.ID.String(), result.Booking.ID)
	paymentGw.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	bookings.AssertExpectations(t)
}

func TestCaptureIdempotencyKey(t *testing.T) {
	holdID := uuid.New()
	assert.Equal(t, "client-key", captureIdempotencyKey(" client-key ", holdID))
	assert.Equal(t, "checkout-"+holdID.String(), captureIdempotencyKey("", holdID))
}

func TestScheduleKitchenPrep(t *testing.T) {
	ctx := context.Background()

	booking := &entity.Booking{ShowID: uuid.New()}
	booking.ID = uuid.New()

	intervalAt := time.Now().UTC().Add(time.Hour)
	show := &entity.Show{IntervalAt: &intervalAt}

	order := &entity.ConcessionOrder{ScheduledPrepAt: intervalAt.Add(-10 * time.Minute)}
	order.ID = uuid.New()

	t.Run("publishes right after checkout", func(t *testing.T) {
		kitchen := new(mockKitchenPublisher)
		service := &checkoutService{kitchen: kitchen, log: zap.NewNop()}

		kitchen.On("PublishPrep", ctx, gateway.KitchenPrepEvent{
			OrderID:   order.ID,
			BookingID: booking.ID,
			ShowID:    booking.ShowID,
			PrepAt:    order.ScheduledPrepAt,
		}).Return("msg-1", nil)

		service.scheduleKitchenPrep(ctx, booking, show, order)
		kitchen.AssertExpectations(t)
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		kitchen := new(mockKitchenPublisher)
		service := &checkoutService{kitchen: kitchen, log: zap.NewNop()}

		// The outbox row is the delivery guarantee; a failed nudge here must
		// not surface to the customer whose booking just committed.
		kitchen.On("PublishPrep", ctx, mock.AnythingOfType("gateway.KitchenPrepEvent")).
			Return("", errors.New("broker unavailable"))

		service.scheduleKitchenPrep(ctx, booking, show, order)
		kitchen.AssertExpectations(t)
	})

	t.Run("skipped without an interval break", func(t *testing.T) {
		kitchen := new(mockKitchenPublisher)
		service := &checkoutService{kitchen: kitchen, log: zap.NewNop()}

		service.scheduleKitchenPrep(ctx, booking, &entity.Show{}, order)
		service.scheduleKitchenPrep(ctx, booking, show, nil)
		kitchen.AssertNotCalled(t, "PublishPrep", mock.Anything, mock.Anything)
	})
}

func TestConcessionPrepAt(t *testing.T) {
	startsAt := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	intervalAt := startsAt.Add(75 * time.Minute)

	withInterval := &entity.Show{StartsAt: startsAt, IntervalAt: &intervalAt}
	assert.Equal(t, intervalAt.Add(-10*time.Minute), concessionPrepAt(withInterval))

	withoutInterval := &entity.Show{StartsAt: startsAt}
	assert.Equal(t, startsAt.Add(-10*time.Minute), concessionPrepAt(withoutInterval))
}
