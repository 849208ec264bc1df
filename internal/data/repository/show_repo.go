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

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindAuditoriumByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error)

	// MarkCancelled flips a show from SCHEDULED to CANCELLED and reports whether
	// the transition happened. A false return means the show was already in a
	// terminal state.
	MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (id, auditorium_id, movie_title, starts_at, interval_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.AuditoriumID,
		show.MovieTitle,
		show.StartsAt,
		show.IntervalAt,
		show.Status,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
		)
		return fmt.Errorf("create show %s: %w", show.ID.String(), err)
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, auditorium_id, movie_title, starts_at, interval_at, status, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	var show entity.Show
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.AuditoriumID,
		&show.MovieTitle,
		&show.StartsAt,
		&show.IntervalAt,
		&show.Status,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return &show, nil
}

func (r *showRepository) FindAuditoriumByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	query := `
		SELECT id, name, rows, cols, created_at, updated_at
		FROM auditoriums
		WHERE id = $1
	`

	var auditorium entity.Auditorium
	err := r.db.QueryRow(ctx, query, id).Scan(
		&auditorium.ID,
		&auditorium.Name,
		&auditorium.Rows,
		&auditorium.Cols,
		&auditorium.CreatedAt,
		&auditorium.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by ID",
			zap.Error(err),
			zap.String("auditorium_id", id.String()),
		)
		return nil, fmt.Errorf("find auditorium by ID %s: %w", id.String(), err)
	}

	return &auditorium, nil
}

func (r *showRepository) MarkCancelled(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	query := `
		UPDATE shows
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND status = 'SCHEDULED'
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to cancel show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return false, fmt.Errorf("cancel show %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
