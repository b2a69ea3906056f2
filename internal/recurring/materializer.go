// Package recurring turns active recurring templates into ledger transactions
// on a fixed cadence.
package recurring

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/vlkv/finance-bot/internal/logger"
	"gitlab.com/vlkv/finance-bot/internal/models"
	"gitlab.com/vlkv/finance-bot/internal/repository"
)

// LedgerStore is the materializer's write side of the ledger.
// Implemented by repository.TransactionRepository.
type LedgerStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
}

// TemplateStore loads and advances recurring templates.
// Implemented by repository.RecurringRepository.
type TemplateStore interface {
	ListActive(ctx context.Context) ([]models.RecurringTemplate, error)
	Update(ctx context.Context, id int64, upd repository.RecurringUpdate) error
}

// Materializer periodically scans active templates and inserts one ledger
// transaction for each template whose cadence has elapsed.
type Materializer struct {
	ledger    LedgerStore
	templates TemplateStore
	interval  time.Duration
	backoff   time.Duration
}

// New creates a Materializer. interval is the normal cycle period; backoff is
// the shorter retry delay used after a failed cycle.
func New(ledger LedgerStore, templates TemplateStore, interval, backoff time.Duration) *Materializer {
	return &Materializer{
		ledger:    ledger,
		templates: templates,
		interval:  interval,
		backoff:   backoff,
	}
}

// Start runs the materializer loop until ctx is cancelled. Cycles never
// overlap: each sleep begins only after the previous cycle has finished.
// A failed cycle is logged and retried after the backoff delay.
func (m *Materializer) Start(ctx context.Context) {
	logger.Log.Info().
		Dur("interval", m.interval).
		Dur("backoff", m.backoff).
		Msg("Recurring materializer started")

	for {
		delay := m.interval
		if err := m.RunCycle(ctx, time.Now()); err != nil {
			logger.Log.Error().Err(err).Msg("Materializer cycle failed")
			delay = m.backoff
		}

		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("Recurring materializer stopped")
			return
		case <-time.After(delay):
		}
	}
}

// RunCycle processes every active template that is due at now. Per-template
// failures are logged and skip that template; a load failure fails the cycle.
func (m *Materializer) RunCycle(ctx context.Context, now time.Time) error {
	templates, err := m.templates.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active templates: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, tmpl := range templates {
		if !tmpl.Frequency.Due(tmpl.LastProcessed, now) {
			continue
		}
		if err := m.materialize(ctx, &tmpl, today); err != nil {
			logger.Log.Error().Err(err).
				Int64("template_id", tmpl.ID).
				Int64("user_id", tmpl.UserID).
				Msg("Failed to materialize recurring template")
		}
	}

	return nil
}

// materialize inserts the template's transaction for today, then advances
// last_processed. last_processed moves only after the insert succeeds, so a
// failed insert is retried on the next cycle.
func (m *Materializer) materialize(ctx context.Context, tmpl *models.RecurringTemplate, today time.Time) error {
	tx := &models.Transaction{
		UserID:      tmpl.UserID,
		Kind:        tmpl.Kind,
		Amount:      tmpl.Amount,
		Category:    tmpl.Category,
		TxDate:      today,
		Description: tmpl.Description,
	}
	if err := m.ledger.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := m.templates.Update(ctx, tmpl.ID, repository.RecurringUpdate{LastProcessed: &today}); err != nil {
		return fmt.Errorf("failed to advance last_processed: %w", err)
	}

	logger.Log.Debug().
		Int64("template_id", tmpl.ID).
		Int64("user_id", tmpl.UserID).
		Str("category", tmpl.Category).
		Msg("Materialized recurring transaction")
	return nil
}
