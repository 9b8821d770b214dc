package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"notesbot/internal/db"
	"notesbot/internal/session"
)

type Bot struct {
	api        *tgbotapi.BotAPI
	controller *Controller
	log        *slog.Logger
}

func New(token string, store *db.Store, sessions *session.Store, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	return &Bot{
		api:        api,
		controller: NewController(store, sessions, &telegramTransport{api: api}, logger),
		log:        logger,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Get started"},
		tgbotapi.BotCommand{Command: "viewtasks", Description: "View your tasks"},
		tgbotapi.BotCommand{Command: "deletealltasks", Description: "Delete all your tasks"},
	)
	if _, err := b.api.Request(commands); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		if query.Message == nil {
			b.log.Error("callback without message", "callback_id", query.ID)
			return
		}
		b.controller.HandleCallback(ctx, query.Message.Chat.ID, query.From.ID, query.ID, query.Data)
	case update.Message != nil && update.Message.IsCommand():
		b.controller.HandleCommand(ctx, update.Message.Chat.ID, update.Message.From.ID, update.Message.Command())
	case update.Message != nil && update.Message.Text != "":
		b.controller.HandleText(ctx, update.Message.Chat.ID, update.Message.From.ID, update.Message.Text)
	}
}

type telegramTransport struct {
	api *tgbotapi.BotAPI
}

func (t *telegramTransport) Send(chatID int64, text string, buttons []Button) (int, error) {
	message := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
		for _, button := range buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data))
		}
		message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}

	sent, err := t.api.Send(message)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (t *telegramTransport) DeleteMessage(chatID int64, messageID int) error {
	_, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (t *telegramTransport) AnswerCallback(callbackID string) error {
	_, err := t.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}
