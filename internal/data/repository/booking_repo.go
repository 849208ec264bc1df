package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error
	CreateSeats(ctx context.Context, q database.Queryer, seats []*entity.BookingSeat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByHoldID(ctx context.Context, holdID uuid.UUID) (*entity.Booking, error)
	FindSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeatDetail, error)

	// FindConfirmedSummaries returns, per confirmed booking of a show, the
	// fields show cancellation needs: seat count, total and the captured
	// payment reference when one exists.
	FindConfirmedSummaries(ctx context.Context, showID uuid.UUID) ([]*entity.ConfirmedBookingSummary, error)

	// MarkRefunded moves a booking to REFUNDED from any refundable state and
	// reports whether the transition happened.
	MarkRefunded(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, show_id, hold_id, customer_email, customer_phone, status,
		                      subtotal_cents, discount_cents, total_cents, loyalty_points_earned,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.ShowID,
		booking.HoldID,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Status,
		booking.SubtotalCents,
		booking.DiscountCents,
		booking.TotalCents,
		booking.LoyaltyPointsEarned,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("hold_id", booking.HoldID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) CreateSeats(ctx context.Context, q database.Queryer, seats []*entity.BookingSeat) error {
	query := `
		INSERT INTO booking_seats (id, booking_id, show_seat_id, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, seat := range seats {
		_, err := q.Exec(ctx, query,
			seat.ID,
			seat.BookingID,
			seat.ShowSeatID,
			seat.PriceCents,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking seat",
				zap.Error(err),
				zap.String("booking_id", seat.BookingID.String()),
				zap.String("show_seat_id", seat.ShowSeatID.String()),
			)
			return fmt.Errorf("create booking seat %s: %w", seat.ShowSeatID.String(), err)
		}
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, show_id, hold_id, customer_email, customer_phone, status,
		       subtotal_cents, discount_cents, total_cents, loyalty_points_earned,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id, "find booking by ID")
}

func (r *bookingRepository) FindByHoldID(ctx context.Context, holdID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, show_id, hold_id, customer_email, customer_phone, status,
		       subtotal_cents, discount_cents, total_cents, loyalty_points_earned,
		       created_at, updated_at
		FROM bookings
		WHERE hold_id = $1
	`

	return r.scanOne(ctx, query, holdID, "find booking by hold ID")
}

func (r *bookingRepository) scanOne(ctx context.Context, query string, arg uuid.UUID, op string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&booking.ID,
		&booking.ShowID,
		&booking.HoldID,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Status,
		&booking.SubtotalCents,
		&booking.DiscountCents,
		&booking.TotalCents,
		&booking.LoyaltyPointsEarned,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op,
			zap.Error(err),
			zap.String("arg", arg.String()),
		)
		return nil, fmt.Errorf("%s %s: %w", op, arg.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeatDetail, error) {
	query := `
		SELECT bs.id, bs.booking_id, bs.show_seat_id, bs.price_cents, bs.created_at,
		       ss.seat_id, s.row_label, s.seat_number
		FROM booking_seats bs
		JOIN show_seats ss ON ss.id = bs.show_seat_id
		JOIN seats s ON s.id = ss.seat_id
		WHERE bs.booking_id = $1
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seat details",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking seat details %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.BookingSeatDetail
	for rows.Next() {
		var seat entity.BookingSeatDetail
		err := rows.Scan(
			&seat.ID,
			&seat.BookingID,
			&seat.ShowSeatID,
			&seat.PriceCents,
			&seat.CreatedAt,
			&seat.SeatID,
			&seat.RowLabel,
			&seat.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan booking seat detail row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat detail row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *bookingRepository) FindConfirmedSummaries(ctx context.Context, showID uuid.UUID) ([]*entity.ConfirmedBookingSummary, error) {
	query := `
		SELECT b.id, b.customer_email, b.total_cents,
		       (SELECT COUNT(*) FROM booking_seats bs WHERE bs.booking_id = b.id),
		       p.provider_reference
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.id AND p.status = 'CAPTURED'
		WHERE b.show_id = $1 AND b.status = 'CONFIRMED'
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find confirmed booking summaries",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find confirmed booking summaries %s: %w", showID.String(), err)
	}
	defer rows.Close()

	var summaries []*entity.ConfirmedBookingSummary
	for rows.Next() {
		var summary entity.ConfirmedBookingSummary
		err := rows.Scan(
			&summary.BookingID,
			&summary.CustomerEmail,
			&summary.TotalCents,
			&summary.SeatCount,
			&summary.ProviderReference,
		)
		if err != nil {
			r.log.Error("Failed to scan booking summary row", zap.Error(err))
			return nil, fmt.Errorf("scan booking summary row: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

func (r *bookingRepository) MarkRefunded(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'REFUNDED', updated_at = NOW()
		WHERE id = $1 AND status IN ('CONFIRMED', 'FAILED', 'CANCELLED')
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark booking refunded",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark booking %s refunded: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
