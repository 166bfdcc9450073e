package handler

import (
	"context"
	"image"

	"github.com/set-night/lovematch/internal/domain"
	"github.com/set-night/lovematch/internal/service"
	"github.com/set-night/lovematch/internal/telegram"
)

// Messenger is the part of the chat platform the handlers talk to.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, replyToID int) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, replyToID int) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Analyzer draws a compatibility result.
type Analyzer interface {
	Draw() domain.Compatibility
}

// Compositor renders the compatibility card.
type Compositor interface {
	Compose(first, second image.Image, percentage int, phrase string) (image.Image, error)
}

// Handler holds all dependencies needed by command and photo handlers.
type Handler struct {
	messenger  Messenger
	sessions   *service.SessionStore
	analyzer   Analyzer
	compositor Compositor
	tgLogger   *telegram.TelegramLogger
	locks      *chatLocks
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Messenger  Messenger
	Sessions   *service.SessionStore
	Analyzer   Analyzer
	Compositor Compositor
	TgLogger   *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		messenger:  deps.Messenger,
		sessions:   deps.Sessions,
		analyzer:   deps.Analyzer,
		compositor: deps.Compositor,
		tgLogger:   deps.TgLogger,
		locks:      newChatLocks(),
	}
}
