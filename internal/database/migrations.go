package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gitlab.com/vlkv/finance-bot/internal/logger"
)

// migration is one named schema change. Names are recorded in _migrations
// after the body commits, so a re-run skips applied migrations and retries
// failed ones. The list is append-only; shipped migrations are never edited.
type migration struct {
	name       string
	statements []string
}

var migrations = []migration{
	{
		name: "001_create_transactions",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS transactions (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
				amount DECIMAL(14, 2) NOT NULL CHECK (amount > 0),
				category TEXT NOT NULL,
				tx_date DATE NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, tx_date)`,
		},
	},
	{
		name: "002_create_user_categories",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS user_categories (
				id SERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				name TEXT NOT NULL,
				kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (user_id, name, kind)
			)`,
		},
	},
	{
		name: "003_create_budget_limits",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS budget_limits (
				id SERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				category TEXT NOT NULL,
				kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
				amount DECIMAL(14, 2) NOT NULL CHECK (amount > 0),
				period TEXT NOT NULL CHECK (period IN ('day', 'week', 'month')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (user_id, category, kind, period)
			)`,
		},
	},
	{
		name: "004_create_recurring_transactions",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS recurring_transactions (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
				amount DECIMAL(14, 2) NOT NULL CHECK (amount > 0),
				category TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				frequency TEXT NOT NULL CHECK (frequency IN ('daily', 'weekly', 'monthly')),
				start_date DATE NOT NULL,
				last_processed DATE,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_recurring_active ON recurring_transactions(is_active)`,
		},
	},
}

// MigrationCount returns the number of declared migrations.
func MigrationCount() int {
	return len(migrations)
}

// RunMigrations applies all migrations not yet recorded, in declared order,
// each inside its own transaction. A failure aborts: the process must not
// proceed with a partially-migrated schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM _migrations WHERE name = $1)`, m.name,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.name, err)
		}
		if exists {
			continue
		}

		if err := applyMigration(ctx, pool, m); err != nil {
			return err
		}
		logger.Log.Info().Str("migration", m.name).Msg("Applied migration")
	}

	return nil
}

// applyMigration runs one migration body and records its name in the same
// transaction, so a partial failure leaves the migration unrecorded.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", m.name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO _migrations (name) VALUES ($1)`, m.name); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", m.name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m.name, err)
	}
	return nil
}
