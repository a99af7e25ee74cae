package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/semmidev/photark/internal/config"
)

// Telegram sends a short outcome message to a chat. Notification only,
// the dump itself never leaves the host through this channel.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(cfg config.TelegramConfig) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", cfg.ChatID, err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Start(ctx context.Context) error {
	return nil
}

func (t *Telegram) Success(ctx context.Context, message string) error {
	return t.send(fmt.Sprintf("✅ Backup completed\n\n%s\n🕐 %s",
		message, time.Now().Format("2006-01-02 15:04:05")))
}

func (t *Telegram) Failure(ctx context.Context, exitCode int, message string) error {
	return t.send(fmt.Sprintf("❌ Backup failed (exit %d)\n\n%s\n🕐 %s",
		exitCode, message, time.Now().Format("2006-01-02 15:04:05")))
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
