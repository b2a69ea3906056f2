package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/database"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// TransactionRepository handles ledger database operations. The ledger is
// append-only: transactions are never updated or deleted once created.
type TransactionRepository struct {
	db database.PGXDB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db database.PGXDB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create adds a new ledger transaction. The caller is expected to pre-validate
// input, but bad input is rejected here rather than corrupting state.
// Today's date is assigned when TxDate is unset.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: kind %q", ErrInvalidTransaction, tx.Kind)
	}
	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount %s", ErrInvalidTransaction, tx.Amount)
	}
	if tx.TxDate.IsZero() {
		now := time.Now()
		tx.TxDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, kind, amount, category, tx_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, tx.UserID, tx.Kind, tx.Amount, tx.Category, tx.TxDate, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListByUser retrieves transactions for a user, newest first. A nil from or
// to leaves that side of the date filter open.
func (r *TransactionRepository) ListByUser(
	ctx context.Context,
	userID int64,
	from, to *time.Time,
	limit int,
) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, amount, category, tx_date, description, created_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2::date IS NULL OR tx_date >= $2)
		  AND ($3::date IS NULL OR tx_date <= $3)
		ORDER BY tx_date DESC, id DESC
		LIMIT $4
	`, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Kind, &tx.Amount, &tx.Category,
			&tx.TxDate, &tx.Description, &tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

// Balance returns the all-time income and expense sums for a user.
// Both sums are zero when no rows match.
func (r *TransactionRepository) Balance(ctx context.Context, userID int64) (income, expense decimal.Decimal, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`, userID).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return income, expense, nil
}

// MonthlyBreakdown groups the current calendar month's transactions by
// category, descending by total. A nil kind groups across both kinds.
func (r *TransactionRepository) MonthlyBreakdown(
	ctx context.Context,
	userID int64,
	kind *models.Kind,
) ([]models.CategoryTotal, error) {
	start, end := models.PeriodMonth.Window(time.Now())

	rows, err := r.db.Query(ctx, `
		SELECT category, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1
		  AND tx_date >= $2 AND tx_date < $3
		  AND ($4::text IS NULL OR kind = $4)
		GROUP BY category
		ORDER BY total DESC
	`, userID, start, end, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly breakdown: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breakdown: %w", err)
	}
	return totals, nil
}

// SumByCategory sums transactions of one category and kind within
// [from, to). Returns zero when no rows match.
func (r *TransactionRepository) SumByCategory(
	ctx context.Context,
	userID int64,
	category string,
	kind models.Kind,
	from, to time.Time,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND category = $2 AND kind = $3
		  AND tx_date >= $4 AND tx_date < $5
	`, userID, category, kind, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum category: %w", err)
	}
	return total, nil
}
