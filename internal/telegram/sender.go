package telegram

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/metrics"
)

// Client sends messages and fetches files through the Bot API.
type Client struct {
	bot        *bot.Bot
	httpClient *http.Client
}

func NewClient(b *bot.Bot) *Client {
	return &Client{
		bot:        b,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SendText sends a plain text message with a force-reply keyboard.
// A non-zero replyToID threads the message under that message.
func (c *Client) SendText(ctx context.Context, chatID int64, text string, replyToID int) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: replyTo(replyToID),
		ReplyMarkup:     ForceReply(),
	})
	if err != nil {
		metrics.APIFailures.WithLabelValues("sendMessage").Inc()
		return fmt.Errorf("send message: %w", err)
	}
	metrics.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

// SendPhoto uploads a PNG with caption as a reply to replyToID.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, replyToID int) error {
	_, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:          chatID,
		Photo:           &models.InputFileUpload{Filename: config.ResultFilename, Data: bytes.NewReader(photo)},
		Caption:         caption,
		ReplyParameters: replyTo(replyToID),
	})
	if err != nil {
		metrics.APIFailures.WithLabelValues("sendPhoto").Inc()
		return fmt.Errorf("send photo: %w", err)
	}
	metrics.MessagesSent.WithLabelValues("photo").Inc()
	return nil
}
