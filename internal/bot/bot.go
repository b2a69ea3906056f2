// Package bot provides the Telegram transport: it delivers inbound text to
// the chat router and renders the router's replies back to the user.
package bot

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/vlkv/finance-bot/internal/chat"
	"gitlab.com/vlkv/finance-bot/internal/config"
	"gitlab.com/vlkv/finance-bot/internal/logger"
)

// Bot wraps the Telegram bot with the chat router.
type Bot struct {
	bot    *tgbot.Bot
	router *chat.Router
}

// New creates a new Bot instance.
func New(cfg *config.Config, router *chat.Router) (*Bot, error) {
	b := &Bot{router: router}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.handleUpdate),
	}

	telegramBot, err := tgbot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// handleUpdate feeds every inbound text message through the router and
// renders its replies.
func (b *Bot) handleUpdate(ctx context.Context, tgBot *tgbot.Bot, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	logger.Log.Info().
		Int64("user_id", msg.From.ID).
		Str("username", msg.From.Username).
		Str("text", msg.Text).
		Msg("User input")

	replies := b.router.HandleMessage(ctx, msg.From.ID, msg.Text)
	for _, reply := range replies {
		if err := b.send(ctx, tgBot, msg.Chat.ID, reply); err != nil {
			logger.Log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to send reply")
		}
	}
}
