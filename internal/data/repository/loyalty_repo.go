package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LoyaltyRepository interface {
	CreateEntries(ctx context.Context, q database.Queryer, entries []*entity.LoyaltyLedger) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.LoyaltyLedger, error)
	SummaryByEmail(ctx context.Context, email string) (*entity.LoyaltySummary, error)
	RecentByEmail(ctx context.Context, email string, limit int) ([]*entity.LoyaltyLedger, error)
}

type loyaltyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLoyaltyRepository(db database.PgxIface, log *zap.Logger) LoyaltyRepository {
	return &loyaltyRepository{
		db:  db,
		log: log.With(zap.String("repository", "loyalty")),
	}
}

func (r *loyaltyRepository) CreateEntries(ctx context.Context, q database.Queryer, entries []*entity.LoyaltyLedger) error {
	query := `
		INSERT INTO loyalty_ledger (id, booking_id, customer_email, type, points, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, entry := range entries {
		_, err := q.Exec(ctx, query,
			entry.ID,
			entry.BookingID,
			entry.CustomerEmail,
			entry.Type,
			entry.Points,
			entry.Reason,
			entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create loyalty entry",
				zap.Error(err),
				zap.String("customer_email", entry.CustomerEmail),
				zap.String("type", string(entry.Type)),
			)
			return fmt.Errorf("create loyalty entry %s: %w", string(entry.Type), err)
		}
	}

	return nil
}

func (r *loyaltyRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.LoyaltyLedger, error) {
	query := `
		SELECT id, booking_id, customer_email, type, points, reason, created_at
		FROM loyalty_ledger
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find loyalty entries by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find loyalty entries by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.LoyaltyLedger
	for rows.Next() {
		var entry entity.LoyaltyLedger
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.CustomerEmail,
			&entry.Type,
			&entry.Points,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan loyalty entry row", zap.Error(err))
			return nil, fmt.Errorf("scan loyalty entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *loyaltyRepository) SummaryByEmail(ctx context.Context, email string) (*entity.LoyaltySummary, error) {
	// Points are stored positive for every entry type; REDEEM rows subtract
	// from the balance.
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'REDEEM' THEN -points ELSE points END), 0),
		       COALESCE(SUM(points) FILTER (WHERE type = 'EARN'), 0),
		       COALESCE(SUM(points) FILTER (WHERE type = 'REDEEM'), 0),
		       COALESCE(SUM(points) FILTER (WHERE type = 'ADJUST'), 0)
		FROM loyalty_ledger
		WHERE customer_email = $1
	`

	summary := entity.LoyaltySummary{CustomerEmail: email}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&summary.BalancePoints,
		&summary.EarnedPoints,
		&summary.RedeemedPoints,
		&summary.AdjustmentPoints,
	)
	if err != nil {
		r.log.Error("Failed to compute loyalty summary",
			zap.Error(err),
			zap.String("customer_email", email),
		)
		return nil, fmt.Errorf("compute loyalty summary %s: %w", email, err)
	}

	return &summary, nil
}

func (r *loyaltyRepository) RecentByEmail(ctx context.Context, email string, limit int) ([]*entity.LoyaltyLedger, error) {
	query := `
		SELECT id, booking_id, customer_email, type, points, reason, created_at
		FROM loyalty_ledger
		WHERE customer_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, email, limit)
	if err != nil {
		r.log.Error("Failed to find recent loyalty entries",
			zap.Error(err),
			zap.String("customer_email", email),
		)
		return nil, fmt.Errorf("find recent loyalty entries %s: %w", email, err)
	}
	defer rows.Close()

	var entries []*entity.LoyaltyLedger
	for rows.Next() {
		var entry entity.LoyaltyLedger
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.CustomerEmail,
			&entry.Type,
			&entry.Points,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan loyalty entry row", zap.Error(err))
			return nil, fmt.Errorf("scan loyalty entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
