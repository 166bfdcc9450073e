package service

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/lovematch/internal/domain"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	s := NewSessionStore(0)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	created := s.Create(10, "alice", "bob", 77)
	assert.NotEmpty(t, created.CorrelationID)

	sess, err := s.Get(10)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingFirstPhoto, sess.Step)
	assert.Equal(t, "alice", sess.FirstUser)
	assert.Equal(t, "bob", sess.SecondUser)
	assert.Equal(t, 77, sess.ReplyToMessage)
	assert.Nil(t, sess.FirstImage)

	s.SetFirstImage(10, img)
	sess, err = s.Get(10)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingSecondPhoto, sess.Step)
	assert.Same(t, img, sess.FirstImage)

	s.SetSecondImage(10, img)
	sess, err = s.Get(10)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingSecondPhoto, sess.Step)
	assert.Same(t, img, sess.SecondImage)

	s.Delete(10)
	_, err = s.Get(10)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// idempotent
	s.Delete(10)
	assert.Equal(t, 0, s.Count())
}

func TestSessionStore_SetImageWithoutSession(t *testing.T) {
	s := NewSessionStore(0)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	assert.NotPanics(t, func() {
		s.SetFirstImage(99, img)
		s.SetSecondImage(99, img)
	})
	_, err := s.Get(99)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_CreateOverwrites(t *testing.T) {
	s := NewSessionStore(0)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	first := s.Create(5, "a", "b", 1)
	s.SetFirstImage(5, img)
	second := s.Create(5, "c", "d", 2)

	sess, err := s.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "c", sess.FirstUser)
	assert.Equal(t, domain.StepAwaitingFirstPhoto, sess.Step)
	assert.Nil(t, sess.FirstImage)
	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
	assert.Equal(t, 1, s.Count())
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	s := NewSessionStore(0)
	s.Create(1, "a", "b", 1)

	sess, err := s.Get(1)
	require.NoError(t, err)
	sess.Step = domain.StepAwaitingSecondPhoto

	again, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingFirstPhoto, again.Step)
}

func TestSessionStore_TTL(t *testing.T) {
	s := NewSessionStore(20 * time.Millisecond)
	s.Create(1, "a", "b", 1)

	assert.Eventually(t, func() bool {
		_, err := s.Get(1)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
