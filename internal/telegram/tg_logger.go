package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/set-night/lovematch/internal/config"
)

// MaxMessageLen is the Bot API limit for message text.
const MaxMessageLen = 4096

// TelegramLogger mirrors operational errors into an admin chat topic.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

// SetBot attaches the bot used for sending. Call it before the bot starts.
func (l *TelegramLogger) SetBot(b *bot.Bot) {
	l.bot = b
}

type LogType string

const (
	LogTypeError LogType = "error"
	LogTypePanic LogType = "panic"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	// Truncate if too long
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		MessageThreadID: l.cfg.LogTopicError,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	msg := fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogPanic(recovered any, stack string) {
	msg := fmt.Sprintf("🔥 Panic\n\n%v\n\n%s", recovered, stack)
	l.Log(LogTypePanic, msg)
}
