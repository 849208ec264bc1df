package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HoldRepository interface {
	Create(ctx context.Context, q database.Queryer, hold *entity.Hold, showSeatIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error)
	FindSeatIDs(ctx context.Context, holdID uuid.UUID) ([]uuid.UUID, error)
	FindSeatDetails(ctx context.Context, holdID uuid.UUID) ([]*entity.ShowSeatDetail, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*entity.Hold, error)

	// Conditional transitions out of ACTIVE. Each reports whether the row
	// actually moved; false means another path won the race.
	MarkConverted(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
	MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
	MarkExpired(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
}

type holdRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHoldRepository(db database.PgxIface, log *zap.Logger) HoldRepository {
	return &holdRepository{
		db:  db,
		log: log.With(zap.String("repository", "hold")),
	}
}

func (r *holdRepository) Create(ctx context.Context, q database.Queryer, hold *entity.Hold, showSeatIDs []uuid.UUID) error {
	query := `
		INSERT INTO holds (id, show_id, customer_email, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		hold.ID,
		hold.ShowID,
		hold.CustomerEmail,
		hold.Status,
		hold.ExpiresAt,
		hold.CreatedAt,
		hold.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hold",
			zap.Error(err),
			zap.String("hold_id", hold.ID.String()),
		)
		return fmt.Errorf("create hold %s: %w", hold.ID.String(), err)
	}

	seatQuery := `
		INSERT INTO hold_seats (id, hold_id, show_seat_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	for _, showSeatID := range showSeatIDs {
		_, err := q.Exec(ctx, seatQuery, uuid.New(), hold.ID, showSeatID, hold.CreatedAt)
		if err != nil {
			r.log.Error("Failed to create hold seat",
				zap.Error(err),
				zap.String("hold_id", hold.ID.String()),
				zap.String("show_seat_id", showSeatID.String()),
			)
			return fmt.Errorf("create hold seat %s: %w", showSeatID.String(), err)
		}
	}

	return nil
}

func (r *holdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	query := `
		SELECT id, show_id, customer_email, status, expires_at, created_at, updated_at
		FROM holds
		WHERE id = $1
	`

	var hold entity.Hold
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hold.ID,
		&hold.ShowID,
		&hold.CustomerEmail,
		&hold.Status,
		&hold.ExpiresAt,
		&hold.CreatedAt,
		&hold.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hold by ID",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return nil, fmt.Errorf("find hold by ID %s: %w", id.String(), err)
	}

	return &hold, nil
}

func (r *holdRepository) FindSeatIDs(ctx context.Context, holdID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT show_seat_id FROM hold_seats WHERE hold_id = $1`

	rows, err := r.db.Query(ctx, query, holdID)
	if err != nil {
		r.log.Error("Failed to find hold seat IDs",
			zap.Error(err),
			zap.String("hold_id", holdID.String()),
		)
		return nil, fmt.Errorf("find hold seat IDs %s: %w", holdID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan hold seat row", zap.Error(err))
			return nil, fmt.Errorf("scan hold seat row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *holdRepository) FindSeatDetails(ctx context.Context, holdID uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	query := `
		SELECT ss.id, ss.show_id, ss.seat_id, ss.status, ss.price_cents, ss.created_at, ss.updated_at,
		       s.row_label, s.seat_number
		FROM hold_seats hs
		JOIN show_seats ss ON ss.id = hs.show_seat_id
		JOIN seats s ON s.id = ss.seat_id
		WHERE hs.hold_id = $1
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, holdID)
	if err != nil {
		r.log.Error("Failed to find hold seat details",
			zap.Error(err),
			zap.String("hold_id", holdID.String()),
		)
		return nil, fmt.Errorf("find hold seat details %s: %w", holdID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.ShowSeatDetail
	for rows.Next() {
		var seat entity.ShowSeatDetail
		err := rows.Scan(
			&seat.ID,
			&seat.ShowID,
			&seat.SeatID,
			&seat.Status,
			&seat.PriceCents,
			&seat.CreatedAt,
			&seat.UpdatedAt,
			&seat.RowLabel,
			&seat.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan hold seat detail row", zap.Error(err))
			return nil, fmt.Errorf("scan hold seat detail row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *holdRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*entity.Hold, error) {
	query := `
		SELECT id, show_id, customer_email, status, expires_at, created_at, updated_at
		FROM holds
		WHERE status = 'ACTIVE' AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to find expired holds", zap.Error(err))
		return nil, fmt.Errorf("find expired holds: %w", err)
	}
	defer rows.Close()

	var holds []*entity.Hold
	for rows.Next() {
		var hold entity.Hold
		err := rows.Scan(
			&hold.ID,
			&hold.ShowID,
			&hold.CustomerEmail,
			&hold.Status,
			&hold.ExpiresAt,
			&hold.CreatedAt,
			&hold.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hold row", zap.Error(err))
			return nil, fmt.Errorf("scan hold row: %w", err)
		}
		holds = append(holds, &hold)
	}

	return holds, nil
}

func (r *holdRepository) MarkConverted(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	return r.transition(ctx, q, id, entity.HoldStatusConverted)
}

func (r *holdRepository) MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	return r.transition(ctx, q, id, entity.HoldStatusCancelled)
}

// MarkExpired additionally requires the deadline to have passed, so a hold
// whose expiry moved forward between batch load and update is left alone.
func (r *holdRepository) MarkExpired(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	query := `
		UPDATE holds
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE' AND expires_at <= NOW()
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to expire hold",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return false, fmt.Errorf("expire hold %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *holdRepository) transition(ctx context.Context, q database.Queryer, id uuid.UUID, to entity.HoldStatus) (bool, error) {
	query := `
		UPDATE holds
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
	`

	result, err := q.Exec(ctx, query, id, to)
	if err != nil {
		r.log.Error("Failed to transition hold",
			zap.Error(err),
			zap.String("hold_id", id.String()),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition hold %s to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}
