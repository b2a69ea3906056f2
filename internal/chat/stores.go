package chat

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// LedgerStore is the transaction persistence the router commits through.
// Implemented by repository.TransactionRepository.
type LedgerStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, userID int64, from, to *time.Time, limit int) ([]models.Transaction, error)
	Balance(ctx context.Context, userID int64) (income, expense decimal.Decimal, err error)
	MonthlyBreakdown(ctx context.Context, userID int64, kind *models.Kind) ([]models.CategoryTotal, error)
	SumByCategory(ctx context.Context, userID int64, category string, kind models.Kind, from, to time.Time) (decimal.Decimal, error)
}

// CategoryStore manages user-defined categories.
// Implemented by repository.CategoryRepository.
type CategoryStore interface {
	Create(ctx context.Context, userID int64, name string, kind models.Kind) (*models.UserCategory, error)
	Delete(ctx context.Context, userID int64, name string, kind models.Kind) (bool, error)
	ListByUserAndKind(ctx context.Context, userID int64, kind models.Kind) ([]models.UserCategory, error)
}

// BudgetStore manages budget limits.
// Implemented by repository.BudgetRepository.
type BudgetStore interface {
	Upsert(ctx context.Context, limit *models.BudgetLimit) error
	ListByUser(ctx context.Context, userID int64) ([]models.BudgetLimit, error)
}

// RecurringStore creates recurring templates.
// Implemented by repository.RecurringRepository.
type RecurringStore interface {
	Create(ctx context.Context, tmpl *models.RecurringTemplate) error
}
