package handler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/domain"
	"github.com/set-night/lovematch/internal/metrics"
	"github.com/set-night/lovematch/internal/service"
)

// HandlePhoto advances the chat's session with an uploaded photo and
// renders the result once both photos are in.
func (h *Handler) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	fileID, ok := imageFileID(msg)
	if !ok {
		return
	}
	chatID := msg.Chat.ID

	unlock := h.locks.Lock(chatID)
	defer unlock()

	sess, err := h.sessions.Get(chatID)
	if err != nil {
		metrics.Rejections.WithLabelValues("no_session").Inc()
		h.reply(ctx, chatID, msgNoSession, msg.ID)
		return
	}
	log := slog.With("chat_id", chatID, "correlation_id", sess.CorrelationID, "step", sess.Step.String())

	data, err := h.messenger.DownloadFile(ctx, fileID)
	if err != nil && !errors.Is(err, domain.ErrImageTooLarge) {
		// the session is kept so the same participant can simply resend
		log.Error("download photo", "error", err)
		h.reply(ctx, chatID, msgDownloadFailed, msg.ID)
		return
	}

	var img image.Image
	if err == nil {
		img, err = service.DecodeImage(data)
	}
	if err != nil {
		log.Warn("invalid image", "error", err)
		metrics.Rejections.WithLabelValues("invalid_image").Inc()
		h.sessions.Delete(chatID)
		h.syncSessionGauge()
		h.reply(ctx, chatID, msgInvalidImage, msg.ID)
		return
	}

	if sess.Step == domain.StepAwaitingFirstPhoto {
		h.sessions.SetFirstImage(chatID, img)
		log.Info("first photo received")
		h.reply(ctx, chatID, promptSecondPhoto(sess.SecondUser), msg.ID)
		return
	}

	h.sessions.SetSecondImage(chatID, img)
	log.Info("second photo received")

	defer func() {
		h.sessions.Delete(chatID)
		h.syncSessionGauge()
	}()

	sess, err = h.sessions.Get(chatID)
	if err != nil {
		log.Error("reload session", "error", err)
		h.reply(ctx, chatID, msgRenderFailed, msg.ID)
		return
	}
	h.render(ctx, log, sess, msg.ID)
}

func (h *Handler) render(ctx context.Context, log *slog.Logger, sess domain.Session, triggerID int) {
	result := h.analyzer.Draw()

	photo, err := h.compose(sess, result)
	if err != nil {
		log.Error("render compatibility image", "error", err)
		metrics.Renders.WithLabelValues("failure").Inc()
		h.tgLogger.LogError(err, fmt.Sprintf("render chat %d (%s)", sess.ChatID, sess.CorrelationID))
		h.reply(ctx, sess.ChatID, msgRenderFailed, triggerID)
		return
	}

	if err := h.messenger.SendPhoto(ctx, sess.ChatID, photo, Caption(sess, result), sess.ReplyToMessage); err != nil {
		log.Error("send compatibility image", "error", err)
		metrics.Renders.WithLabelValues("send_failure").Inc()
		return
	}

	metrics.Renders.WithLabelValues("success").Inc()
	log.Info("compatibility sent", "percentage", result.Percentage)
}

func (h *Handler) compose(sess domain.Session, result domain.Compatibility) ([]byte, error) {
	img, err := h.compositor.Compose(sess.FirstImage, sess.SecondImage, result.Percentage, result.Phrase)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: no image produced", domain.ErrRender)
	}
	return service.EncodePNG(img)
}
