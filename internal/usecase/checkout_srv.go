package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/internal/lock"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	paymentProvider = "MOCK_GATEWAY"
	defaultCurrency = "USD"

	// Kitchen prep is triggered this long before the interval break.
	kitchenPrepLead = 10 * time.Minute
)

type CheckoutService interface {
	// CheckoutBooking converts an active hold into a confirmed booking. The
	// operation is idempotent per hold: a repeated call returns the existing
	// booking flagged as a replay.
	CheckoutBooking(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResult, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type checkoutService struct {
	repo       *repository.Repository
	db         database.PgxIface
	locker     lock.SeatLocker
	payment    gateway.PaymentGateway
	kitchen    gateway.KitchenPublisher
	holds      HoldService
	loyaltyCfg utils.LoyaltyConfig
	outboxCfg  utils.OutboxConfig
	log        *zap.Logger
}

func NewCheckoutService(
	repo *repository.Repository,
	db database.PgxIface,
	locker lock.SeatLocker,
	payment gateway.PaymentGateway,
	kitchen gateway.KitchenPublisher,
	holds HoldService,
	loyaltyCfg utils.LoyaltyConfig,
	outboxCfg utils.OutboxConfig,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:       repo,
		db:         db,
		locker:     locker,
		payment:    payment,
		kitchen:    kitchen,
		holds:      holds,
		loyaltyCfg: loyaltyCfg,
		outboxCfg:  outboxCfg,
		log:        log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) CheckoutBooking(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	holdID, err := uuid.Parse(req.HoldID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid hold ID format %s", req.HoldID)
	}

	// Fast replay path before any side effect.
	if existing, err := s.repo.Booking.FindByHoldID(ctx, holdID); err != nil {
		return nil, err
	} else if existing != nil {
		booking, err := s.buildBookingResponse(ctx, existing)
		if err != nil {
			return nil, err
		}
		return &response.CheckoutResult{Booking: booking, IsIdempotentReplay: true}, nil
	}

	hold, err := s.repo.Hold.FindByID(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, apperror.New(http.StatusNotFound, "HOLD_NOT_FOUND", "Hold not found")
	}

	show, err := s.repo.Show.FindByID(ctx, hold.ShowID)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperror.New(http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found")
	}

	seats, err := s.repo.Hold.FindSeatDetails(ctx, holdID)
	if err != nil {
		return nil, err
	}

	if err := assertHoldCanCheckout(hold, show, seats, time.Now().UTC()); err != nil {
		return nil, err
	}

	comboRule, err := s.pickComboRule(ctx, req.Concessions, len(seats))
	if err != nil {
		return nil, err
	}

	availablePoints := 0
	if req.RedeemPoints > 0 {
		summary, err := s.repo.Loyalty.SummaryByEmail(ctx, hold.CustomerEmail)
		if err != nil {
			return nil, err
		}
		availablePoints = summary.BalancePoints
	}

	ticketPrices := make([]int64, 0, len(seats))
	for _, seat := range seats {
		ticketPrices = append(ticketPrices, seat.PriceCents)
	}

	pricing, err := calculateCheckoutPricing(checkoutPricingInput{
		TicketPricesCents:     ticketPrices,
		Concessions:           req.Concessions,
		ComboRule:             comboRule,
		RedeemPointsRequested: req.RedeemPoints,
		AvailablePoints:       availablePoints,
		PointValueCents:       s.loyaltyCfg.PointValueCents,
		EarnRate:              s.loyaltyCfg.EarnRate,
	})
	if err != nil {
		return nil, err
	}

	bookingID := uuid.New()
	capture, err := s.payment.Capture(ctx, gateway.CaptureRequest{
		BookingID:      bookingID,
		HoldID:         hold.ID,
		PaymentMethod:  req.PaymentMethod,
		AmountCents:    pricing.PayableTotalCents,
		Currency:       defaultCurrency,
		CustomerEmail:  hold.CustomerEmail,
		IdempotencyKey: captureIdempotencyKey(req.IdempotencyKey, hold.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("capture payment for hold %s: %w", holdID.String(), err)
	}
	if !capture.Captured {
		// Declined payment frees the seats immediately instead of letting the
		// hold sit until TTL expiry.
		if _, cancelErr := s.holds.CancelHold(ctx, holdID.String()); cancelErr != nil {
			s.log.Warn("Failed to cancel hold after declined payment",
				zap.Error(cancelErr),
				zap.String("hold_id", holdID.String()),
			)
		}
		return nil, apperror.Newf(http.StatusPaymentRequired, "PAYMENT_CAPTURE_FAILED", "Payment capture failed: %s", capture.FailureReason)
	}

	booking, order, err := s.convertHoldTx(ctx, hold, show, seats, req, pricing, bookingID, capture)
	if err != nil {
		if apperror.HasCode(err, "HOLD_STATE_CONFLICT") {
			// Another request converted the hold between our pre-check and the
			// transaction. Serve its booking as a replay.
			if existing, replayErr := s.repo.Booking.FindByHoldID(ctx, holdID); replayErr == nil && existing != nil {
				bookingResp, buildErr := s.buildBookingResponse(ctx, existing)
				if buildErr != nil {
					return nil, buildErr
				}
				return &response.CheckoutResult{Booking: bookingResp, IsIdempotentReplay: true}, nil
			}
		}
		return nil, err
	}

	seatIDs := make([]uuid.UUID, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}
	s.locker.ReleaseAll(ctx, hold.ShowID, seatIDs, hold.ID.String())

	s.scheduleKitchenPrep(ctx, booking, show, order)

	s.log.Info("Checkout completed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("hold_id", holdID.String()),
		zap.Int64("total_cents", booking.TotalCents),
		zap.Int("seats", len(seats)),
	)

	bookingResp, err := s.buildBookingResponse(ctx, booking)
	if err != nil {
		return nil, err
	}
	return &response.CheckoutResult{Booking: bookingResp}, nil
}

// assertHoldCanCheckout guards the conversion preconditions. It runs once
// before payment capture and once more inside the conversion transaction via
// the conditional hold update.
func assertHoldCanCheckout(hold *entity.Hold, show *entity.Show, seats []*entity.ShowSeatDetail, now time.Time) error {
	switch hold.Status {
	case entity.HoldStatusActive:
	case entity.HoldStatusConverted:
		return apperror.New(http.StatusConflict, "HOLD_ALREADY_CONVERTED", "Hold has already been converted to a booking")
	default:
		return apperror.Newf(http.StatusConflict, "HOLD_NOT_ACTIVE", "Hold is %s and cannot be checked out", string(hold.Status))
	}

	if hold.ExpiresAt.Before(now) {
		return apperror.New(http.StatusConflict, "HOLD_EXPIRED", "Hold has expired")
	}
	if !show.IsBookable() {
		return apperror.New(http.StatusConflict, "SHOW_NOT_BOOKABLE", "Show is not open for booking")
	}
	if len(seats) == 0 {
		return apperror.New(http.StatusConflict, "EMPTY_HOLD", "No seats found in hold for checkout")
	}
	for _, seat := range seats {
		if seat.Status != entity.ShowSeatStatusHeld {
			return apperror.New(http.StatusConflict, "SEAT_STATE_CONFLICT", "Held seats changed state before checkout")
		}
	}
	return nil
}

// pickComboRule loads the active rules targeting the requested concession SKUs
// and returns the most demanding one the ticket count satisfies.
func (s *checkoutService) pickComboRule(ctx context.Context, concessions []request.ConcessionItemRequest, ticketCount int) (*ComboRuleInput, error) {
	if len(concessions) == 0 {
		return nil, nil
	}

	skus := make([]string, 0, len(concessions))
	seen := make(map[string]struct{}, len(concessions))
	for _, concession := range concessions {
		sku := strings.ToUpper(strings.TrimSpace(concession.ItemCode))
		if _, dup := seen[sku]; dup || sku == "" {
			continue
		}
		seen[sku] = struct{}{}
		skus = append(skus, sku)
	}

	rules, err := s.repo.ComboRule.FindActiveForSkus(ctx, skus)
	if err != nil {
		return nil, err
	}

	// Rules arrive ordered min_tickets DESC, discount_percent DESC, so the
	// first satisfiable rule is the best one.
	for _, rule := range rules {
		if ticketCount >= rule.MinTickets {
			return &ComboRuleInput{
				MinTickets:      rule.MinTickets,
				TargetSku:       rule.TargetSku,
				DiscountPercent: rule.DiscountPercent,
			}, nil
		}
	}
	return nil, nil
}

func (s *checkoutService) convertHoldTx(
	ctx context.Context,
	hold *entity.Hold,
	show *entity.Show,
	seats []*entity.ShowSeatDetail,
	req *request.CheckoutRequest,
	pricing *CheckoutPricing,
	bookingID uuid.UUID,
	capture *gateway.CaptureResult,
) (*entity.Booking, *entity.ConcessionOrder, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	// The conditional transition doubles as the in-transaction replay check:
	// losing the race means another checkout converted the hold first.
	converted, err := s.repo.Hold.MarkConverted(ctx, tx, hold.ID)
	if err != nil {
		return nil, nil, err
	}
	if !converted {
		return nil, nil, apperror.New(http.StatusConflict, "HOLD_STATE_CONFLICT", "Hold state changed during checkout")
	}

	seatIDs := make([]uuid.UUID, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}
	booked, err := s.repo.ShowSeat.MarkBooked(ctx, tx, seatIDs)
	if err != nil {
		return nil, nil, err
	}
	if booked != int64(len(seatIDs)) {
		return nil, nil, apperror.New(http.StatusConflict, "SEAT_STATE_CONFLICT", "Held seats changed state during checkout")
	}

	var customerPhone *string
	if phone := strings.TrimSpace(req.CustomerPhone); phone != "" {
		customerPhone = &phone
	}

	booking := &entity.Booking{
		ShowID:              hold.ShowID,
		HoldID:              hold.ID,
		CustomerEmail:       hold.CustomerEmail,
		CustomerPhone:       customerPhone,
		Status:              entity.BookingStatusConfirmed,
		SubtotalCents:       pricing.SubtotalCents,
		DiscountCents:       pricing.TotalDiscountCents,
		TotalCents:          pricing.PayableTotalCents,
		LoyaltyPointsEarned: pricing.EarnedPoints,
	}
	booking.ID = bookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		return nil, nil, err
	}

	bookingSeats := make([]*entity.BookingSeat, 0, len(seats))
	for _, seat := range seats {
		bookingSeat := &entity.BookingSeat{
			BookingID:  bookingID,
			ShowSeatID: seat.ID,
			PriceCents: seat.PriceCents,
		}
		bookingSeat.ID = uuid.New()
		bookingSeat.CreatedAt = now
		bookingSeats = append(bookingSeats, bookingSeat)
	}
	if err := s.repo.Booking.CreateSeats(ctx, tx, bookingSeats); err != nil {
		return nil, nil, err
	}

	capturedAt := capture.CapturedAt
	payment := &entity.Payment{
		BookingID:         bookingID,
		Provider:          paymentProvider,
		ProviderReference: capture.Reference,
		Status:            entity.PaymentStatusCaptured,
		AmountCents:       pricing.PayableTotalCents,
		Currency:          defaultCurrency,
		CapturedAt:        &capturedAt,
	}
	payment.ID = uuid.New()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		return nil, nil, err
	}

	var order *entity.ConcessionOrder
	if len(pricing.PersistedConcessionItems) > 0 {
		order, err = s.createConcessionOrder(ctx, tx, bookingID, show, pricing, now)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.createLoyaltyEntries(ctx, tx, booking, pricing, now); err != nil {
		return nil, nil, err
	}

	if err := s.createOutboxRows(ctx, tx, booking, show, order, now); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit checkout transaction: %w", err)
	}

	return booking, order, nil
}

// captureIdempotencyKey prefers the client-supplied key and otherwise derives
// one from the hold, which is unique per conversion attempt anyway.
func captureIdempotencyKey(requested string, holdID uuid.UUID) string {
	if key := strings.TrimSpace(requested); key != "" {
		return key
	}
	return "checkout-" + holdID.String()
}

// scheduleKitchenPrep nudges the kitchen queue right after commit so prep
// scheduling does not wait for the next dispatcher poll. Best effort: the
// outbox row is the delivery guarantee, a failure here only costs latency.
func (s *checkoutService) scheduleKitchenPrep(ctx context.Context, booking *entity.Booking, show *entity.Show, order *entity.ConcessionOrder) {
	if order == nil || show.IntervalAt == nil {
		return
	}

	if _, err := s.kitchen.PublishPrep(ctx, gateway.KitchenPrepEvent{
		OrderID:   order.ID,
		BookingID: booking.ID,
		ShowID:    booking.ShowID,
		PrepAt:    order.ScheduledPrepAt,
	}); err != nil {
		s.log.Warn("Failed to publish kitchen prep after checkout",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("order_id", order.ID.String()),
		)
	}
}

func concessionPrepAt(show *entity.Show) time.Time {
	if show.IntervalAt != nil {
		return show.IntervalAt.Add(-kitchenPrepLead)
	}
	// Shows without an interval break prep right before the start.
	return show.StartsAt.Add(-kitchenPrepLead)
}

func (s *checkoutService) createConcessionOrder(
	ctx context.Context,
	tx database.Queryer,
	bookingID uuid.UUID,
	show *entity.Show,
	pricing *CheckoutPricing,
	now time.Time,
) (*entity.ConcessionOrder, error) {
	order := &entity.ConcessionOrder{
		BookingID:       bookingID,
		Status:          entity.ConcessionOrderStatusPending,
		ScheduledPrepAt: concessionPrepAt(show),
		TotalCents:      pricing.ConcessionSubtotalCents - pricing.ComboDiscountCents,
	}
	order.ID = uuid.New()
	order.CreatedAt = now
	order.UpdatedAt = now

	items := make([]*entity.ConcessionItem, 0, len(pricing.PersistedConcessionItems))
	for _, persisted := range pricing.PersistedConcessionItems {
		item := &entity.ConcessionItem{
			OrderID:         order.ID,
			Sku:             persisted.Sku,
			Name:            persisted.Name,
			Quantity:        persisted.Quantity,
			UnitPriceCents:  persisted.UnitPriceCents,
			DiscountPercent: persisted.DiscountPercent,
		}
		item.ID = uuid.New()
		item.CreatedAt = now
		items = append(items, item)
	}

	if err := s.repo.Concession.CreateOrder(ctx, tx, order, items); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *checkoutService) createLoyaltyEntries(
	ctx context.Context,
	tx database.Queryer,
	booking *entity.Booking,
	pricing *CheckoutPricing,
	now time.Time,
) error {
	var entries []*entity.LoyaltyLedger

	// REDEEM rows store positive points; the summary query negates them.
	if pricing.LoyaltyRedeemPointsUsed > 0 {
		entry := &entity.LoyaltyLedger{
			BookingID:     &booking.ID,
			CustomerEmail: booking.CustomerEmail,
			Type:          entity.LoyaltyEntryTypeRedeem,
			Points:        pricing.LoyaltyRedeemPointsUsed,
			Reason:        "Redeemed at checkout",
		}
		entry.ID = uuid.New()
		entry.CreatedAt = now
		entries = append(entries, entry)
	}

	if pricing.EarnedPoints > 0 {
		entry := &entity.LoyaltyLedger{
			BookingID:     &booking.ID,
			CustomerEmail: booking.CustomerEmail,
			Type:          entity.LoyaltyEntryTypeEarn,
			Points:        pricing.EarnedPoints,
			Reason:        "Earned from confirmed booking",
		}
		entry.ID = uuid.New()
		entry.CreatedAt = now
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil
	}
	return s.repo.Loyalty.CreateEntries(ctx, tx, entries)
}

func (s *checkoutService) createOutboxRows(
	ctx context.Context,
	tx database.Queryer,
	booking *entity.Booking,
	show *entity.Show,
	order *entity.ConcessionOrder,
	now time.Time,
) error {
	ticketBody, err := json.Marshal(ticketPayload{
		BookingID: booking.ID.String(),
		HoldID:    booking.HoldID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal ticket payload: %w", err)
	}

	ticket := &entity.Notification{
		BookingID:   booking.ID,
		Channel:     entity.NotificationChannelEmail,
		Template:    entity.TemplateBookingTicket,
		Recipient:   booking.CustomerEmail,
		Payload:     ticketBody,
		Status:      entity.NotificationStatusPending,
		MaxAttempts: s.outboxCfg.MaxAttempts,
	}
	ticket.ID = uuid.New()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	notifications := []*entity.Notification{ticket}

	// The kitchen trigger only exists for shows with an interval break; the
	// dispatcher pushes it back until prep time arrives.
	if order != nil && show.IntervalAt != nil {
		kitchenBody, err := json.Marshal(kitchenPayload{
			BookingID: booking.ID.String(),
			OrderID:   order.ID.String(),
			PrepAt:    order.ScheduledPrepAt,
		})
		if err != nil {
			return fmt.Errorf("marshal kitchen payload: %w", err)
		}

		kitchen := &entity.Notification{
			BookingID:   booking.ID,
			Channel:     entity.NotificationChannelQueue,
			Template:    entity.TemplateKitchenPrepTrigger,
			Recipient:   entity.RecipientKitchenQueue,
			Payload:     kitchenBody,
			Status:      entity.NotificationStatusPending,
			MaxAttempts: s.outboxCfg.MaxAttempts,
		}
		kitchen.ID = uuid.New()
		kitchen.CreatedAt = now
		kitchen.UpdatedAt = now
		notifications = append(notifications, kitchen)
	}

	return s.repo.Notification.CreateBatch(ctx, tx, notifications)
}

func (s *checkoutService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.New(http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	}

	return s.buildBookingResponse(ctx, booking)
}

func (s *checkoutService) buildBookingResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	show, err := s.repo.Show.FindByID(ctx, booking.ShowID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Booking.FindSeatDetails(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Concession.FindOrderByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	loyaltyEntries, err := s.repo.Loyalty.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.Notification.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := &response.BookingResponse{
		ID:                  booking.ID.String(),
		ShowID:              booking.ShowID.String(),
		HoldID:              booking.HoldID.String(),
		CustomerEmail:       booking.CustomerEmail,
		CustomerPhone:       booking.CustomerPhone,
		Status:              string(booking.Status),
		Subtotal:            float64(booking.SubtotalCents) / 100,
		Discount:            float64(booking.DiscountCents) / 100,
		Total:               float64(booking.TotalCents) / 100,
		LoyaltyPointsEarned: booking.LoyaltyPointsEarned,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}

	if show != nil {
		resp.Show = &response.BookingShowResponse{
			ID:         show.ID.String(),
			MovieTitle: show.MovieTitle,
			StartsAt:   show.StartsAt,
			IntervalAt: show.IntervalAt,
			Status:     string(show.Status),
		}
	}

	for _, seat := range seats {
		resp.Seats = append(resp.Seats, response.BookingSeatResponse{
			ShowSeatID: seat.ShowSeatID.String(),
			SeatID:     seat.SeatID.String(),
			RowLabel:   seat.RowLabel,
			SeatNumber: seat.SeatNumber,
			Price:      float64(seat.PriceCents) / 100,
		})
	}

	if payment != nil {
		resp.Payment = &response.PaymentResponse{
			ID:                payment.ID.String(),
			Provider:          payment.Provider,
			ProviderReference: payment.ProviderReference,
			Status:            string(payment.Status),
			Amount:            float64(payment.AmountCents) / 100,
			Currency:          payment.Currency,
			CapturedAt:        payment.CapturedAt,
		}
	}

	if order != nil {
		items, err := s.repo.Concession.FindItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		orderResp := &response.ConcessionOrderResponse{
			ID:              order.ID.String(),
			Status:          string(order.Status),
			ScheduledPrepAt: order.ScheduledPrepAt,
			TotalAmount:     float64(order.TotalCents) / 100,
		}
		for _, item := range items {
			orderResp.Items = append(orderResp.Items, response.ConcessionItemResponse{
				ID:              item.ID.String(),
				Sku:             item.Sku,
				Name:            item.Name,
				Quantity:        item.Quantity,
				UnitPrice:       float64(item.UnitPriceCents) / 100,
				DiscountPercent: float64(item.DiscountPercent),
			})
		}
		resp.ConcessionOrder = orderResp
	}

	for _, entry := range loyaltyEntries {
		resp.LoyaltyEntries = append(resp.LoyaltyEntries, response.LoyaltyEntryResponse{
			ID:        entry.ID.String(),
			Type:      string(entry.Type),
			Points:    entry.Points,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		})
	}

	for _, notification := range notifications {
		resp.Notifications = append(resp.Notifications, response.NotificationResponse{
			ID:        notification.ID.String(),
			Channel:   string(notification.Channel),
			Template:  notification.Template,
			Recipient: notification.Recipient,
			Status:    string(notification.Status),
			CreatedAt: notification.CreatedAt,
			SentAt:    notification.SentAt,
		})
	}

	return resp, nil
}
