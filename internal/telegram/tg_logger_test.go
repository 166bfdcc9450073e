package telegram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/set-night/lovematch/internal/config"
)

func TestTelegramLogger_DisabledIsNoop(t *testing.T) {
	var nilLogger *TelegramLogger
	assert.NotPanics(t, func() {
		nilLogger.LogError(errors.New("boom"), "render")
	})

	l := NewTelegramLogger(nil, &config.Config{})
	assert.NotPanics(t, func() {
		l.LogError(errors.New("boom"), "render")
		l.LogPanic("oops", "stack")
	})
}

func TestReplyTo(t *testing.T) {
	assert.Nil(t, replyTo(0))

	p := replyTo(42)
	if assert.NotNil(t, p) {
		assert.Equal(t, 42, p.MessageID)
		assert.True(t, p.AllowSendingWithoutReply)
	}
}

func TestForceReply(t *testing.T) {
	fr := ForceReply()
	assert.True(t, fr.ForceReply)
	assert.True(t, fr.Selective)
}
