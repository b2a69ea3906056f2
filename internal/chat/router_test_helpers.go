package chat

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/models"
	"gitlab.com/vlkv/finance-bot/internal/repository"
)

// In-memory store fakes for router tests. Each fake mirrors the repository
// semantics closely enough for flow assertions and allows error injection.

type fakeLedger struct {
	txs    []models.Transaction
	nextID int64

	createErr error
	listErr   error
	queryErr  error
}

func (f *fakeLedger) Create(_ context.Context, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	tx.ID = f.nextID
	if tx.TxDate.IsZero() {
		now := time.Now()
		tx.TxDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	tx.CreatedAt = time.Now()
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeLedger) ListByUser(_ context.Context, userID int64, from, to *time.Time, limit int) ([]models.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Transaction
	for _, tx := range f.txs {
		if tx.UserID != userID {
			continue
		}
		if from != nil && tx.TxDate.Before(*from) {
			continue
		}
		if to != nil && tx.TxDate.After(*to) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TxDate.Equal(out[j].TxDate) {
			return out[i].TxDate.After(out[j].TxDate)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) Balance(_ context.Context, userID int64) (decimal.Decimal, decimal.Decimal, error) {
	if f.queryErr != nil {
		return decimal.Zero, decimal.Zero, f.queryErr
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range f.txs {
		if tx.UserID != userID {
			continue
		}
		if tx.Kind == models.KindIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense, nil
}

func (f *fakeLedger) MonthlyBreakdown(_ context.Context, userID int64, kind *models.Kind) ([]models.CategoryTotal, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	start, end := models.PeriodMonth.Window(time.Now())
	sums := make(map[string]decimal.Decimal)
	for _, tx := range f.txs {
		if tx.UserID != userID || tx.TxDate.Before(start) || !tx.TxDate.Before(end) {
			continue
		}
		if kind != nil && tx.Kind != *kind {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	var totals []models.CategoryTotal
	for category, total := range sums {
		totals = append(totals, models.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

func (f *fakeLedger) SumByCategory(_ context.Context, userID int64, category string, kind models.Kind, from, to time.Time) (decimal.Decimal, error) {
	if f.queryErr != nil {
		return decimal.Zero, f.queryErr
	}
	total := decimal.Zero
	for _, tx := range f.txs {
		if tx.UserID != userID || tx.Category != category || tx.Kind != kind {
			continue
		}
		if tx.TxDate.Before(from) || !tx.TxDate.Before(to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

type catKey struct {
	userID int64
	name   string
	kind   models.Kind
}

type fakeCategories struct {
	cats   map[catKey]models.UserCategory
	nextID int

	createErr error
	listErr   error
	deleteErr error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{cats: make(map[catKey]models.UserCategory)}
}

func (f *fakeCategories) Create(_ context.Context, userID int64, name string, kind models.Kind) (*models.UserCategory, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	key := catKey{userID, name, kind}
	if _, exists := f.cats[key]; exists {
		return nil, repository.ErrDuplicateCategory
	}
	f.nextID++
	cat := models.UserCategory{ID: f.nextID, UserID: userID, Name: name, Kind: kind, CreatedAt: time.Now()}
	f.cats[key] = cat
	return &cat, nil
}

func (f *fakeCategories) Delete(_ context.Context, userID int64, name string, kind models.Kind) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	key := catKey{userID, name, kind}
	if _, exists := f.cats[key]; !exists {
		return false, nil
	}
	delete(f.cats, key)
	return true, nil
}

func (f *fakeCategories) ListByUserAndKind(_ context.Context, userID int64, kind models.Kind) ([]models.UserCategory, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.UserCategory
	for key, cat := range f.cats {
		if key.userID == userID && key.kind == kind {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeBudgets struct {
	limits []models.BudgetLimit
	nextID int

	upsertErr error
	listErr   error
}

func (f *fakeBudgets) Upsert(_ context.Context, limit *models.BudgetLimit) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for i := range f.limits {
		l := &f.limits[i]
		if l.UserID == limit.UserID && l.Category == limit.Category &&
			l.Kind == limit.Kind && l.Period == limit.Period {
			l.Amount = limit.Amount
			l.UpdatedAt = time.Now()
			limit.ID = l.ID
			return nil
		}
	}
	f.nextID++
	limit.ID = f.nextID
	limit.CreatedAt = time.Now()
	limit.UpdatedAt = limit.CreatedAt
	f.limits = append(f.limits, *limit)
	return nil
}

func (f *fakeBudgets) ListByUser(_ context.Context, userID int64) ([]models.BudgetLimit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.BudgetLimit
	for _, l := range f.limits {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

type fakeRecurring struct {
	templates []models.RecurringTemplate
	nextID    int64

	createErr error
}

func (f *fakeRecurring) Create(_ context.Context, tmpl *models.RecurringTemplate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	tmpl.ID = f.nextID
	tmpl.IsActive = true
	if tmpl.StartDate.IsZero() {
		now := time.Now()
		tmpl.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	tmpl.CreatedAt = time.Now()
	f.templates = append(f.templates, *tmpl)
	return nil
}

// newTestRouter wires a Router over fresh fakes.
func newTestRouter() (*Router, *fakeLedger, *fakeCategories, *fakeBudgets, *fakeRecurring) {
	ledger := &fakeLedger{}
	categories := newFakeCategories()
	budgets := &fakeBudgets{}
	recurring := &fakeRecurring{}
	return NewRouter(ledger, categories, budgets, recurring), ledger, categories, budgets, recurring
}
