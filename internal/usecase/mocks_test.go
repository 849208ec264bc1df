package usecase

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// stubTx satisfies pgx.Tx for transaction-shaped service code whose repository
// calls are mocked; only Commit and Rollback are ever reached.
type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *stubTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *stubTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

type stubDB struct {
	database.PgxIface
	tx *stubTx
}

func (d *stubDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

type mockSeatLocker struct {
	mock.Mock
}

func (m *mockSeatLocker) AcquireAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string, ttl time.Duration) (*uuid.UUID, error) {
	args := m.Called(ctx, showID, showSeatIDs, token, ttl)
	if conflict := args.Get(0); conflict != nil {
		return conflict.(*uuid.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSeatLocker) ReleaseAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string) {
	m.Called(ctx, showID, showSeatIDs, token)
}

type mockHoldRepo struct {
	mock.Mock
}

func (m *mockHoldRepo) Create(ctx context.Context, q database.Queryer, hold *entity.Hold, showSeatIDs []uuid.UUID) error {
	return m.Called(ctx, q, hold, showSeatIDs).Error(0)
}

func (m *mockHoldRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	args := m.Called(ctx, id)
	if hold := args.Get(0); hold != nil {
		return hold.(*entity.Hold), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHoldRepo) FindSeatIDs(ctx context.Context, holdID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, holdID)
	if ids := args.Get(0); ids != nil {
		return ids.([]uuid.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHoldRepo) FindSeatDetails(ctx context.Context, holdID uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	args := m.Called(ctx, holdID)
	if seats := args.Get(0); seats != nil {
		return seats.([]*entity.ShowSeatDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHoldRepo) FindExpired(ctx context.Context, now time.Time, limit int) ([]*entity.Hold, error) {
	args := m.Called(ctx, now, limit)
	if holds := args.Get(0); holds != nil {
		return holds.([]*entity.Hold), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHoldRepo) MarkConverted(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockHoldRepo) MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockHoldRepo) MarkExpired(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

type mockShowSeatRepo struct {
	mock.Mock
}

func (m *mockShowSeatRepo) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	args := m.Called(ctx, showID)
	if seats := args.Get(0); seats != nil {
		return seats.([]*entity.ShowSeatDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShowSeatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	args := m.Called(ctx, ids)
	if seats := args.Get(0); seats != nil {
		return seats.([]*entity.ShowSeatDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShowSeatRepo) MarkHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, q, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockShowSeatRepo) MarkBooked(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, q, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockShowSeatRepo) ReleaseHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, q, ids)
	return args.Get(0).(int64), args.Error(1)
}

type mockShowRepo struct {
	mock.Mock
}

func (m *mockShowRepo) Create(ctx context.Context, show *entity.Show) error {
	return m.Called(ctx, show).Error(0)
}

func (m *mockShowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	args := m.Called(ctx, id)
	if show := args.Get(0); show != nil {
		return show.(*entity.Show), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShowRepo) FindAuditoriumByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	args := m.Called(ctx, id)
	if auditorium := args.Get(0); auditorium != nil {
		return auditorium.(*entity.Auditorium), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShowRepo) MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error {
	return m.Called(ctx, q, booking).Error(0)
}

func (m *mockBookingRepo) CreateSeats(ctx context.Context, q database.Queryer, seats []*entity.BookingSeat) error {
	return m.Called(ctx, q, seats).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if booking := args.Get(0); booking != nil {
		return booking.(*entity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindByHoldID(ctx context.Context, holdID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, holdID)
	if booking := args.Get(0); booking != nil {
		return booking.(*entity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeatDetail, error) {
	args := m.Called(ctx, bookingID)
	if seats := args.Get(0); seats != nil {
		return seats.([]*entity.BookingSeatDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindConfirmedSummaries(ctx context.Context, showID uuid.UUID) ([]*entity.ConfirmedBookingSummary, error) {
	args := m.Called(ctx, showID)
	if summaries := args.Get(0); summaries != nil {
		return summaries.([]*entity.ConfirmedBookingSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) MarkRefunded(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, q database.Queryer, payment *entity.Payment) error {
	return m.Called(ctx, q, payment).Error(0)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if payment := args.Get(0); payment != nil {
		return payment.(*entity.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentRepo) MarkRefunded(ctx context.Context, q database.Queryer, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, bookingID)
	return args.Bool(0), args.Error(1)
}

type mockConcessionRepo struct {
	mock.Mock
}

func (m *mockConcessionRepo) CreateOrder(ctx context.Context, q database.Queryer, order *entity.ConcessionOrder, items []*entity.ConcessionItem) error {
	return m.Called(ctx, q, order, items).Error(0)
}

func (m *mockConcessionRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.ConcessionOrder, error) {
	args := m.Called(ctx, id)
	if order := args.Get(0); order != nil {
		return order.(*entity.ConcessionOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConcessionRepo) FindOrderByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.ConcessionOrder, error) {
	args := m.Called(ctx, bookingID)
	if order := args.Get(0); order != nil {
		return order.(*entity.ConcessionOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConcessionRepo) FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.ConcessionItem, error) {
	args := m.Called(ctx, orderID)
	if items := args.Get(0); items != nil {
		return items.([]*entity.ConcessionItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConcessionRepo) MarkPreparing(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockConcessionRepo) CancelByBookingIDs(ctx context.Context, q database.Queryer, bookingIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, q, bookingIDs)
	return args.Get(0).(int64), args.Error(1)
}

type mockComboRuleRepo struct {
	mock.Mock
}

func (m *mockComboRuleRepo) FindActiveForSkus(ctx context.Context, skus []string) ([]*entity.ComboRule, error) {
	args := m.Called(ctx, skus)
	if rules := args.Get(0); rules != nil {
		return rules.([]*entity.ComboRule), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLoyaltyRepo struct {
	mock.Mock
}

func (m *mockLoyaltyRepo) CreateEntries(ctx context.Context, q database.Queryer, entries []*entity.LoyaltyLedger) error {
	return m.Called(ctx, q, entries).Error(0)
}

func (m *mockLoyaltyRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.LoyaltyLedger, error) {
	args := m.Called(ctx, bookingID)
	if entries := args.Get(0); entries != nil {
		return entries.([]*entity.LoyaltyLedger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoyaltyRepo) SummaryByEmail(ctx context.Context, email string) (*entity.LoyaltySummary, error) {
	args := m.Called(ctx, email)
	if summary := args.Get(0); summary != nil {
		return summary.(*entity.LoyaltySummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoyaltyRepo) RecentByEmail(ctx context.Context, email string, limit int) ([]*entity.LoyaltyLedger, error) {
	args := m.Called(ctx, email, limit)
	if entries := args.Get(0); entries != nil {
		return entries.([]*entity.LoyaltyLedger), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, q database.Queryer, notifications []*entity.Notification) error {
	return m.Called(ctx, q, notifications).Error(0)
}

func (m *mockNotificationRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Notification, error) {
	args := m.Called(ctx, bookingID)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*entity.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, now, limit)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*entity.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID, externalID *string) error {
	return m.Called(ctx, id, externalID).Error(0)
}

func (m *mockNotificationRepo) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error {
	return m.Called(ctx, id, attempts, nextAttemptAt, lastError, exhausted).Error(0)
}

func (m *mockNotificationRepo) MarkRescheduled(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error {
	return m.Called(ctx, id, nextAttemptAt).Error(0)
}

type mockRefundJobRepo struct {
	mock.Mock
}

func (m *mockRefundJobRepo) CreateBatch(ctx context.Context, q database.Queryer, jobs []*entity.RefundJob) error {
	return m.Called(ctx, q, jobs).Error(0)
}

func (m *mockRefundJobRepo) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.RefundJobDetail, error) {
	args := m.Called(ctx, now, limit)
	if jobs := args.Get(0); jobs != nil {
		return jobs.([]*entity.RefundJobDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRefundJobRepo) MarkProcessed(ctx context.Context, q database.Queryer, id uuid.UUID, providerReference string) error {
	return m.Called(ctx, q, id, providerReference).Error(0)
}

func (m *mockRefundJobRepo) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastError string, exhausted bool) error {
	return m.Called(ctx, id, attempts, nextAttemptAt, lastError, exhausted).Error(0)
}

type mockPaymentGateway struct {
	mock.Mock
}

func (m *mockPaymentGateway) Capture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	args := m.Called(ctx, req)
	if result := args.Get(0); result != nil {
		return result.(*gateway.CaptureResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSMSSender struct {
	mock.Mock
}

func (m *mockSMSSender) Send(ctx context.Context, recipient, message, idempotencyKey string) (string, error) {
	args := m.Called(ctx, recipient, message, idempotencyKey)
	return args.String(0), args.Error(1)
}

type mockRefundGateway struct {
	mock.Mock
}

func (m *mockRefundGateway) Refund(ctx context.Context, req gateway.RefundRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockKitchenPublisher struct {
	mock.Mock
}

func (m *mockKitchenPublisher) PublishPrep(ctx context.Context, event gateway.KitchenPrepEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}
