package repository

import (
	"context"
	"fmt"

	"gitlab.com/vlkv/finance-bot/internal/database"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// CategoryRepository handles user-defined category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create adds a new user category. Returns ErrDuplicateCategory when the
// (user, name, kind) combination already exists.
func (r *CategoryRepository) Create(ctx context.Context, userID int64, name string, kind models.Kind) (*models.UserCategory, error) {
	var cat models.UserCategory
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_categories (user_id, name, kind) VALUES ($1, $2, $3)
		RETURNING id, user_id, name, kind, created_at
	`, userID, name, kind).Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Kind, &cat.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

// Delete removes a user category by name and kind. Returns whether a row was
// actually removed; deleting a missing category is a no-op, not an error.
// Historical transactions keep the category as plain text and are untouched.
func (r *CategoryRepository) Delete(ctx context.Context, userID int64, name string, kind models.Kind) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM user_categories WHERE user_id = $1 AND name = $2 AND kind = $3
	`, userID, name, kind)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUserAndKind retrieves a user's categories of one kind, ordered by name.
func (r *CategoryRepository) ListByUserAndKind(ctx context.Context, userID int64, kind models.Kind) ([]models.UserCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, kind, created_at
		FROM user_categories
		WHERE user_id = $1 AND kind = $2
		ORDER BY name
	`, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.UserCategory
	for rows.Next() {
		var cat models.UserCategory
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Kind, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
