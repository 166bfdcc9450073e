package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/domain"
	"github.com/set-night/lovematch/internal/metrics"
	"github.com/set-night/lovematch/internal/service"
)

// ParseUsernames extracts the two usernames following the command word.
// Every '@' is dropped before validation.
func ParseUsernames(text string) (string, string, error) {
	if !IsCommand(text, config.CommandMery) {
		return "", "", domain.ErrWrongArgCount
	}
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return "", "", domain.ErrWrongArgCount
	}

	users := make([]string, 2)
	for i, f := range fields[1:] {
		u := strings.ReplaceAll(f, "@", "")
		if u == "" || !service.ValidUsername(u) {
			return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidUsername, f)
		}
		users[i] = u
	}
	return users[0], users[1], nil
}

// HandleMery starts a compatibility check for two usernames.
func (h *Handler) HandleMery(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	first, second, err := ParseUsernames(msg.Text)
	if err != nil {
		slog.Debug("reject mery command", "chat_id", chatID, "error", err)
		text := msgInvalidUsername
		if errors.Is(err, domain.ErrWrongArgCount) {
			text = msgWrongFormat
			metrics.Rejections.WithLabelValues("wrong_arg_count").Inc()
		} else {
			metrics.Rejections.WithLabelValues("invalid_username").Inc()
		}
		h.reply(ctx, chatID, text, msg.ID)
		return
	}

	unlock := h.locks.Lock(chatID)
	defer unlock()

	sess := h.sessions.Create(chatID, first, second, msg.ID)
	metrics.SessionsStarted.Inc()
	h.syncSessionGauge()

	slog.Info("session started",
		"chat_id", chatID,
		"correlation_id", sess.CorrelationID,
		"first_user", first,
		"second_user", second,
	)

	h.reply(ctx, chatID, promptFirstPhoto(first), msg.ID)
}

// HandleCancel drops the chat's session, if any.
func (h *Handler) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	unlock := h.locks.Lock(chatID)
	defer unlock()

	text := msgNothingToCancel
	if sess, err := h.sessions.Get(chatID); err == nil {
		slog.Info("session cancelled", "chat_id", chatID, "correlation_id", sess.CorrelationID)
		text = msgCancelled
	}
	h.sessions.Delete(chatID)
	h.syncSessionGauge()

	h.reply(ctx, chatID, text, msg.ID)
}

// HandleHelp explains how to use the bot.
func (h *Handler) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.reply(ctx, update.Message.Chat.ID, msgHelp, update.Message.ID)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, replyToID int) {
	if err := h.messenger.SendText(ctx, chatID, text, replyToID); err != nil {
		slog.Error("send reply", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) syncSessionGauge() {
	metrics.ActiveSessions.Set(float64(h.sessions.Count()))
}
