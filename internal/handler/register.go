package handler

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/config"
)

// Register binds all handlers to b.
func (h *Handler) Register(b *bot.Bot) {
	// Commands
	b.RegisterHandlerMatchFunc(matchCommand(config.CommandMery), h.HandleMery)
	b.RegisterHandlerMatchFunc(matchCommand("/start"), h.HandleHelp)
	b.RegisterHandlerMatchFunc(matchCommand("/help"), h.HandleHelp)
	b.RegisterHandlerMatchFunc(matchCommand("/cancel"), h.HandleCancel)

	// Photos and image documents
	b.RegisterHandlerMatchFunc(IsImageMessage, h.HandlePhoto)
}

// IsCommand reports whether text starts with command, either bare or
// addressed to a bot as command@botname.
func IsCommand(text, command string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	word := fields[0]
	return word == command || strings.HasPrefix(word, command+"@")
}

func matchCommand(command string) bot.MatchFunc {
	return func(update *models.Update) bool {
		return update.Message != nil && IsCommand(update.Message.Text, command)
	}
}

// IsImageMessage reports whether the update carries a photo or an image document.
func IsImageMessage(update *models.Update) bool {
	_, ok := imageFileID(update.Message)
	return ok
}

// imageFileID picks the largest photo size, or an image/* document.
func imageFileID(msg *models.Message) (string, bool) {
	if msg == nil {
		return "", false
	}
	if len(msg.Photo) > 0 {
		best := msg.Photo[0]
		for _, p := range msg.Photo[1:] {
			if p.Width*p.Height >= best.Width*best.Height {
				best = p
			}
		}
		return best.FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}
