package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type ComboRuleRepository interface {
	// FindActiveForSkus returns the active rules targeting any of the given
	// SKUs, most demanding first (highest min_tickets, then highest discount).
	FindActiveForSkus(ctx context.Context, skus []string) ([]*entity.ComboRule, error)
}

type comboRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewComboRuleRepository(db database.PgxIface, log *zap.Logger) ComboRuleRepository {
	return &comboRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "combo_rule")),
	}
}

func (r *comboRuleRepository) FindActiveForSkus(ctx context.Context, skus []string) ([]*entity.ComboRule, error) {
	query := `
		SELECT id, code, description, min_tickets, target_sku, discount_percent, is_active, created_at, updated_at
		FROM combo_rules
		WHERE is_active = TRUE AND target_sku = ANY($1)
		ORDER BY min_tickets DESC, discount_percent DESC
	`

	rows, err := r.db.Query(ctx, query, skus)
	if err != nil {
		r.log.Error("Failed to find active combo rules",
			zap.Error(err),
			zap.Int("sku_count", len(skus)),
		)
		return nil, fmt.Errorf("find active combo rules: %w", err)
	}
	defer rows.Close()

	var rules []*entity.ComboRule
	for rows.Next() {
		var rule entity.ComboRule
		err := rows.Scan(
			&rule.ID,
			&rule.Code,
			&rule.Description,
			&rule.MinTickets,
			&rule.TargetSku,
			&rule.DiscountPercent,
			&rule.IsActive,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan combo rule row", zap.Error(err))
			return nil, fmt.Errorf("scan combo rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}
