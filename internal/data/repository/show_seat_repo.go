package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowSeatRepository interface {
	FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.ShowSeatDetail, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ShowSeatDetail, error)

	// Conditional status transitions. Each returns the number of rows actually
	// moved; callers compare against len(ids) to detect a lost race and roll
	// the enclosing transaction back.
	MarkHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error)
	MarkBooked(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error)
	ReleaseHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error)
}

type showSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowSeatRepository(db database.PgxIface, log *zap.Logger) ShowSeatRepository {
	return &showSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_seat")),
	}
}

func (r *showSeatRepository) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	query := `
		SELECT ss.id, ss.show_id, ss.seat_id, ss.status, ss.price_cents, ss.created_at, ss.updated_at,
		       s.row_label, s.seat_number
		FROM show_seats ss
		JOIN seats s ON s.id = ss.seat_id
		WHERE ss.show_id = $1
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find show seats by show ID",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find show seats by show ID %s: %w", showID.String(), err)
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
			r.log.Error("Failed to scan show seat row", zap.Error(err))
			return nil, fmt.Errorf("scan show seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *showSeatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ShowSeatDetail, error) {
	query := `
		SELECT ss.id, ss.show_id, ss.seat_id, ss.status, ss.price_cents, ss.created_at, ss.updated_at,
		       s.row_label, s.seat_number
		FROM show_seats ss
		JOIN seats s ON s.id = ss.seat_id
		WHERE ss.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find show seats by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find show seats by IDs: %w", err)
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
			r.log.Error("Failed to scan show seat row", zap.Error(err))
			return nil, fmt.Errorf("scan show seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *showSeatRepository) MarkHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	query := `
		UPDATE show_seats
		SET status = 'HELD', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'AVAILABLE'
	`

	result, err := q.Exec(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to mark show seats held",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("mark show seats held: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *showSeatRepository) MarkBooked(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	query := `
		UPDATE show_seats
		SET status = 'BOOKED', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'HELD'
	`

	result, err := q.Exec(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to mark show seats booked",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("mark show seats booked: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *showSeatRepository) ReleaseHeld(ctx context.Context, q database.Queryer, ids []uuid.UUID) (int64, error) {
	query := `
		UPDATE show_seats
		SET status = 'AVAILABLE', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'HELD'
	`

	result, err := q.Exec(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to release held show seats",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("release held show seats: %w", err)
	}

	return result.RowsAffected(), nil
}
