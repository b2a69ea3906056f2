package bot

import (
	"bytes"
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/vlkv/finance-bot/internal/chat"
)

// send renders one router reply as a Telegram message, photo or document.
func (b *Bot) send(ctx context.Context, tgBot *tgbot.Bot, chatID int64, reply chat.Reply) error {
	switch {
	case reply.Photo != nil:
		_, err := tgBot.SendPhoto(ctx, &tgbot.SendPhotoParams{
			ChatID: chatID,
			Photo: &tgmodels.InputFileUpload{
				Filename: reply.Filename,
				Data:     bytes.NewReader(reply.Photo),
			},
			Caption: reply.Text,
		})
		if err != nil {
			return fmt.Errorf("failed to send photo: %w", err)
		}
		return nil

	case reply.Document != nil:
		_, err := tgBot.SendDocument(ctx, &tgbot.SendDocumentParams{
			ChatID: chatID,
			Document: &tgmodels.InputFileUpload{
				Filename: reply.Filename,
				Data:     bytes.NewReader(reply.Document),
			},
			Caption: reply.Text,
		})
		if err != nil {
			return fmt.Errorf("failed to send document: %w", err)
		}
		return nil

	default:
		_, err := tgBot.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      chatID,
			Text:        reply.Text,
			ReplyMarkup: replyMarkup(reply),
		})
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
		return nil
	}
}

// replyMarkup converts the router's keyboard layout to Telegram markup.
// Returns nil when the reply carries no keyboard change.
func replyMarkup(reply chat.Reply) tgmodels.ReplyMarkup {
	if reply.RemoveKeyboard {
		return &tgmodels.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	if len(reply.Keyboard) == 0 {
		return nil
	}
	return &tgmodels.ReplyKeyboardMarkup{
		Keyboard:       keyboardButtons(reply.Keyboard),
		ResizeKeyboard: true,
	}
}

// keyboardButtons maps rows of labels to rows of keyboard buttons.
func keyboardButtons(rows [][]string) [][]tgmodels.KeyboardButton {
	keyboard := make([][]tgmodels.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgmodels.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgmodels.KeyboardButton{Text: label})
		}
		keyboard = append(keyboard, buttons)
	}
	return keyboard
}
