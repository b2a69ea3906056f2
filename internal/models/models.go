// Package models defines the domain entities for the finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind string

// Transaction kinds.
const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind validates a raw kind string at the boundary.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), true
	}
	return "", false
}

// Valid reports whether the kind is one of the closed set.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Period is the evaluation window for a budget limit.
type Period string

// Budget periods.
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a raw period string at the boundary.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), true
	}
	return "", false
}

// Valid reports whether the period is one of the closed set.
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// Window returns the half-open [start, end) interval of the period
// containing now. Weeks start on Monday.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodDay:
		return startOfDay, startOfDay.AddDate(0, 0, 1)
	case PeriodWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := startOfDay.AddDate(0, 0, 1-weekday)
		return start, start.AddDate(0, 0, 7)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	}
}

// Frequency is the cadence of a recurring template.
type Frequency string

// Recurring frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency validates a raw frequency string at the boundary.
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(s), true
	}
	return "", false
}

// Valid reports whether the frequency is one of the closed set.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// Due reports whether a template with this frequency should fire at now,
// given when it last fired. A template that never fired is due immediately.
func (f Frequency) Due(lastProcessed *time.Time, now time.Time) bool {
	if lastProcessed == nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := time.Date(lastProcessed.Year(), lastProcessed.Month(), lastProcessed.Day(), 0, 0, 0, 0, now.Location())

	switch f {
	case FrequencyDaily:
		return last.Before(today)
	case FrequencyWeekly:
		return today.Sub(last) >= 7*24*time.Hour
	case FrequencyMonthly:
		return last.Year() != today.Year() || last.Month() != today.Month()
	}
	return false
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID          int64
	UserID      int64
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	TxDate      time.Time
	Description string
	CreatedAt   time.Time
}

// UserCategory is a user-defined category supplementing the built-in defaults.
type UserCategory struct {
	ID        int
	UserID    int64
	Name      string
	Kind      Kind
	CreatedAt time.Time
}

// BudgetLimit is a per-user ceiling for one category over one period.
// Current spend is derived from transactions on read, never stored.
type BudgetLimit struct {
	ID        int
	UserID    int64
	Category  string
	Kind      Kind
	Amount    decimal.Decimal
	Period    Period
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecurringTemplate specifies transactions to auto-generate.
type RecurringTemplate struct {
	ID            int64
	UserID        int64
	Kind          Kind
	Amount        decimal.Decimal
	Category      string
	Description   string
	Frequency     Frequency
	StartDate     time.Time
	LastProcessed *time.Time
	IsActive      bool
	CreatedAt     time.Time
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

var (
	defaultIncomeCategories  = []string{"Зарплата", "Подарок", "Прочее"}
	defaultExpenseCategories = []string{"Еда", "Транспорт", "Прочее"}
)

// DefaultCategories returns the built-in categories for a kind.
// The returned slice is a copy and safe to append to.
func DefaultCategories(kind Kind) []string {
	var src []string
	if kind == KindIncome {
		src = defaultIncomeCategories
	} else {
		src = defaultExpenseCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
