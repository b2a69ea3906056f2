package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/database"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// RecurringRepository handles recurring template database operations.
// Templates are deactivated rather than hard-deleted.
type RecurringRepository struct {
	db database.PGXDB
}

// NewRecurringRepository creates a new RecurringRepository.
func NewRecurringRepository(db database.PGXDB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

// RecurringUpdate lists the only template fields this core permits mutating.
// A nil field is left unchanged.
type RecurringUpdate struct {
	LastProcessed *time.Time
	IsActive      *bool
}

// Create adds a new recurring template.
func (r *RecurringRepository) Create(ctx context.Context, tmpl *models.RecurringTemplate) error {
	if !tmpl.Kind.Valid() {
		return fmt.Errorf("%w: kind %q", ErrInvalidTransaction, tmpl.Kind)
	}
	if tmpl.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount %s", ErrInvalidTransaction, tmpl.Amount)
	}
	if tmpl.StartDate.IsZero() {
		now := time.Now()
		tmpl.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	tmpl.IsActive = true

	err := r.db.QueryRow(ctx, `
		INSERT INTO recurring_transactions (user_id, kind, amount, category, description, frequency, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at
	`, tmpl.UserID, tmpl.Kind, tmpl.Amount, tmpl.Category, tmpl.Description,
		tmpl.Frequency, tmpl.StartDate,
	).Scan(&tmpl.ID, &tmpl.IsActive, &tmpl.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring template: %w", err)
	}
	return nil
}

// ListActive retrieves all active templates across all users.
func (r *RecurringRepository) ListActive(ctx context.Context) ([]models.RecurringTemplate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, amount, category, description, frequency,
		       start_date, last_processed, is_active, created_at
		FROM recurring_transactions
		WHERE is_active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring templates: %w", err)
	}
	defer rows.Close()

	var templates []models.RecurringTemplate
	for rows.Next() {
		var t models.RecurringTemplate
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Category, &t.Description,
			&t.Frequency, &t.StartDate, &t.LastProcessed, &t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recurring template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring templates: %w", err)
	}
	return templates, nil
}

// ListByUser retrieves all templates for one user, active first.
func (r *RecurringRepository) ListByUser(ctx context.Context, userID int64) ([]models.RecurringTemplate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, amount, category, description, frequency,
		       start_date, last_processed, is_active, created_at
		FROM recurring_transactions
		WHERE user_id = $1
		ORDER BY is_active DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user recurring templates: %w", err)
	}
	defer rows.Close()

	var templates []models.RecurringTemplate
	for rows.Next() {
		var t models.RecurringTemplate
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Category, &t.Description,
			&t.Frequency, &t.StartDate, &t.LastProcessed, &t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recurring template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring templates: %w", err)
	}
	return templates, nil
}

// Update applies a partial update to one template. Only the fields named in
// RecurringUpdate can be mutated.
func (r *RecurringRepository) Update(ctx context.Context, id int64, upd RecurringUpdate) error {
	_, err := r.db.Exec(ctx, `
		UPDATE recurring_transactions SET
			last_processed = COALESCE($2, last_processed),
			is_active = COALESCE($3, is_active)
		WHERE id = $1
	`, id, upd.LastProcessed, upd.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update recurring template: %w", err)
	}
	return nil
}
