// Package telegram connects the dispatcher to the Telegram Bot API over long
// polling.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"finbot/internal/bot"
	"finbot/internal/log"
)

const pollTimeoutSeconds = 30

// Bot runs the long-poll loop and forwards each message to the dispatcher.
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *bot.Dispatcher
	logger     *log.Logger
}

func New(token string, dispatcher *bot.Dispatcher, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	logger.Info("authorized on telegram", "username", api.Self.UserName)
	return &Bot{api: api, dispatcher: dispatcher, logger: logger}, nil
}

// Run polls for updates until the context is canceled. Each message is
// handled in its own goroutine so a slow classification never blocks the
// update stream.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	var reply string
	if msg.IsCommand() {
		reply = b.dispatcher.HandleCommand(ctx, msg.Command(), splitArgs(msg.CommandArguments()))
	} else {
		reply = b.dispatcher.HandleText(ctx, msg.Text)
	}
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("send reply failed", "error", err, "chat_id", msg.Chat.ID)
	}
}

// splitArgs splits the raw argument string on whitespace, dropping empties.
func splitArgs(raw string) []string {
	return strings.Fields(raw)
}
