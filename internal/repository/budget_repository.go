package repository

import (
	"context"
	"fmt"

	"gitlab.com/vlkv/finance-bot/internal/database"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// BudgetRepository handles budget limit database operations.
type BudgetRepository struct {
	db database.PGXDB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.PGXDB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert creates or replaces the limit for (user, category, kind, period).
// Re-setting an existing limit replaces the prior amount.
func (r *BudgetRepository) Upsert(ctx context.Context, limit *models.BudgetLimit) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO budget_limits (user_id, category, kind, amount, period)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category, kind, period)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, limit.UserID, limit.Category, limit.Kind, limit.Amount, limit.Period,
	).Scan(&limit.ID, &limit.CreatedAt, &limit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert budget limit: %w", err)
	}
	return nil
}

// ListByUser retrieves all budget limits for a user, ordered by category.
func (r *BudgetRepository) ListByUser(ctx context.Context, userID int64) ([]models.BudgetLimit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, category, kind, amount, period, created_at, updated_at
		FROM budget_limits
		WHERE user_id = $1
		ORDER BY category, period
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget limits: %w", err)
	}
	defer rows.Close()

	var limits []models.BudgetLimit
	for rows.Next() {
		var l models.BudgetLimit
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Category, &l.Kind, &l.Amount, &l.Period,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget limit: %w", err)
		}
		limits = append(limits, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget limits: %w", err)
	}
	return limits, nil
}
