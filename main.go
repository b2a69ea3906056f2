// Package main is the entry point for the finance tracker Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/vlkv/finance-bot/internal/bot"
	"gitlab.com/vlkv/finance-bot/internal/chat"
	"gitlab.com/vlkv/finance-bot/internal/config"
	"gitlab.com/vlkv/finance-bot/internal/database"
	"gitlab.com/vlkv/finance-bot/internal/logger"
	"gitlab.com/vlkv/finance-bot/internal/recurring"
	"gitlab.com/vlkv/finance-bot/internal/repository"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("finance-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	txRepo := repository.NewTransactionRepository(pool)
	catRepo := repository.NewCategoryRepository(pool)
	budgetRepo := repository.NewBudgetRepository(pool)
	recurRepo := repository.NewRecurringRepository(pool)

	router := chat.NewRouter(txRepo, catRepo, budgetRepo, recurRepo)

	financeBot, err := bot.New(cfg, router)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	materializer := recurring.New(txRepo, recurRepo, cfg.RecurringInterval, cfg.RecurringBackoff)
	go materializer.Start(ctx)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	financeBot.Start(ctx)
}
