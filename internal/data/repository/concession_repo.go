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

type ConcessionRepository interface {
	CreateOrder(ctx context.Context, q database.Queryer, order *entity.ConcessionOrder, items []*entity.ConcessionItem) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.ConcessionOrder, error)
	FindOrderByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.ConcessionOrder, error)
	FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.ConcessionItem, error)

	// MarkPreparing flips an order from PENDING to PREPARING and reports
	// whether it happened.
	MarkPreparing(ctx context.Context, id uuid.UUID) (bool, error)

	// CancelByBookingIDs cancels every concession order of the given bookings,
	// whatever state it is in. Used by show cancellation.
	CancelByBookingIDs(ctx context.Context, q database.Queryer, bookingIDs []uuid.UUID) (int64, error)
}

type concessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConcessionRepository(db database.PgxIface, log *zap.Logger) ConcessionRepository {
	return &concessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "concession")),
	}
}

func (r *concessionRepository) CreateOrder(ctx context.Context, q database.Queryer, order *entity.ConcessionOrder, items []*entity.ConcessionItem) error {
	query := `
		INSERT INTO concession_orders (id, booking_id, status, scheduled_prep_at, total_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		order.ID,
		order.BookingID,
		order.Status,
		order.ScheduledPrepAt,
		order.TotalCents,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create concession order",
			zap.Error(err),
			zap.String("booking_id", order.BookingID.String()),
		)
		return fmt.Errorf("create concession order for booking %s: %w", order.BookingID.String(), err)
	}

	itemQuery := `
		INSERT INTO concession_items (id, order_id, sku, name, quantity, unit_price_cents, discount_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, item := range items {
		_, err := q.Exec(ctx, itemQuery,
			item.ID,
			order.ID,
			item.Sku,
			item.Name,
			item.Quantity,
			item.UnitPriceCents,
			item.DiscountPercent,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create concession item",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("sku", item.Sku),
			)
			return fmt.Errorf("create concession item %s: %w", item.Sku, err)
		}
	}

	return nil
}

func (r *concessionRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.ConcessionOrder, error) {
	query := `
		SELECT id, booking_id, status, scheduled_prep_at, total_cents, created_at, updated_at
		FROM concession_orders
		WHERE id = $1
	`

	return r.scanOrder(ctx, query, id, "find concession order by ID")
}

func (r *concessionRepository) FindOrderByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.ConcessionOrder, error) {
	query := `
		SELECT id, booking_id, status, scheduled_prep_at, total_cents, created_at, updated_at
		FROM concession_orders
		WHERE booking_id = $1
	`

	return r.scanOrder(ctx, query, bookingID, "find concession order by booking ID")
}

func (r *concessionRepository) scanOrder(ctx context.Context, query string, arg uuid.UUID, op string) (*entity.ConcessionOrder, error) {
	var order entity.ConcessionOrder
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&order.ID,
		&order.BookingID,
		&order.Status,
		&order.ScheduledPrepAt,
		&order.TotalCents,
		&order.CreatedAt,
		&order.UpdatedAt,
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

	return &order, nil
}

func (r *concessionRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.ConcessionItem, error) {
	query := `
		SELECT id, order_id, sku, name, quantity, unit_price_cents, discount_percent, created_at
		FROM concession_items
		WHERE order_id = $1
		ORDER BY sku
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find concession items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find concession items %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var items []*entity.ConcessionItem
	for rows.Next() {
		var item entity.ConcessionItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Sku,
			&item.Name,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.DiscountPercent,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan concession item row", zap.Error(err))
			return nil, fmt.Errorf("scan concession item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *concessionRepository) MarkPreparing(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE concession_orders
		SET status = 'PREPARING', updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark concession order preparing",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return false, fmt.Errorf("mark concession order %s preparing: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *concessionRepository) CancelByBookingIDs(ctx context.Context, q database.Queryer, bookingIDs []uuid.UUID) (int64, error) {
	query := `
		UPDATE concession_orders
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE booking_id = ANY($1)
	`

	result, err := q.Exec(ctx, query, bookingIDs)
	if err != nil {
		r.log.Error("Failed to cancel concession orders",
			zap.Error(err),
			zap.Int("count", len(bookingIDs)),
		)
		return 0, fmt.Errorf("cancel concession orders: %w", err)
	}

	return result.RowsAffected(), nil
}
