package telegram

import "github.com/go-telegram/bot/models"

// ForceReply asks clients to open a reply to the bot's message.
// Selective limits it to mentioned users and the replied-to sender.
func ForceReply() *models.ForceReply {
	return &models.ForceReply{
		ForceReply: true,
		Selective:  true,
	}
}

func replyTo(messageID int) *models.ReplyParameters {
	if messageID == 0 {
		return nil
	}
	return &models.ReplyParameters{
		MessageID:                messageID,
		AllowSendingWithoutReply: true,
	}
}
