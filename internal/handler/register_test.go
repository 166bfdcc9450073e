package handler

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/lovematch/internal/domain"
)

func TestParseUsernames(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		first   string
		second  string
		wantErr error
	}{
		{"with at signs", "/mery @alice @bob", "alice", "bob", nil},
		{"bare names", "/mery alice bob", "alice", "bob", nil},
		{"bot suffix", "/mery@lovebot @alice @bob", "alice", "bob", nil},
		{"extra spaces", "/mery   @alice\t@bob ", "alice", "bob", nil},
		{"one arg", "/mery @alice", "", "", domain.ErrWrongArgCount},
		{"no args", "/mery", "", "", domain.ErrWrongArgCount},
		{"three args", "/mery a b c", "", "", domain.ErrWrongArgCount},
		{"punctuation", "/mery @user! @bob", "", "", domain.ErrInvalidUsername},
		{"only at sign", "/mery @ @bob", "", "", domain.ErrInvalidUsername},
		{"longer command word", "/merytest alice bob", "", "", domain.ErrWrongArgCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, err := ParseUsernames(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		text    string
		command string
		want    bool
	}{
		{"/mery @a @b", "/mery", true},
		{"/mery", "/mery", true},
		{"/mery@lovebot @a @b", "/mery", true},
		{"  /help", "/help", true},
		{"/merytest alice bob", "/mery", false},
		{"/startx", "/start", false},
		{"/helpme", "/help", false},
		{"mery", "/mery", false},
		{"", "/mery", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCommand(tt.text, tt.command), tt.text)
	}
}

func TestMatchCommand(t *testing.T) {
	match := matchCommand("/mery")

	assert.True(t, match(&models.Update{Message: &models.Message{Text: "/mery a b"}}))
	assert.False(t, match(&models.Update{Message: &models.Message{Text: "/merytest a b"}}))
	assert.False(t, match(&models.Update{}))
}

func TestImageFileID(t *testing.T) {
	msg := &models.Message{Photo: []models.PhotoSize{
		{FileID: "small", Width: 90, Height: 90},
		{FileID: "large", Width: 1280, Height: 960},
		{FileID: "medium", Width: 320, Height: 240},
	}}
	id, ok := imageFileID(msg)
	assert.True(t, ok)
	assert.Equal(t, "large", id)

	doc := &models.Message{Document: &models.Document{FileID: "doc", MimeType: "image/webp"}}
	id, ok = imageFileID(doc)
	assert.True(t, ok)
	assert.Equal(t, "doc", id)

	_, ok = imageFileID(&models.Message{Document: &models.Document{FileID: "pdf", MimeType: "application/pdf"}})
	assert.False(t, ok)

	_, ok = imageFileID(&models.Message{Text: "hello"})
	assert.False(t, ok)

	_, ok = imageFileID(nil)
	assert.False(t, ok)

	assert.False(t, IsImageMessage(&models.Update{}))
}

func TestChatLocks(t *testing.T) {
	l := newChatLocks()

	unlock := l.Lock(1)
	assert.Equal(t, 1, l.size())

	acquired := make(chan struct{})
	go func() {
		u := l.Lock(1)
		close(acquired)
		u()
	}()

	assert.Never(t, func() bool {
		select {
		case <-acquired:
			return true
		default:
			return false
		}
	}, 100*time.Millisecond, 5*time.Millisecond, "second lock acquired while the first was held")

	// a different chat is independent
	other := l.Lock(2)
	other()

	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return l.size() == 0 }, time.Second, 5*time.Millisecond)
}
