package service

import (
	"image"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/set-night/lovematch/internal/domain"
)

// SessionStore keeps at most one in-memory session per chat.
// A zero ttl keeps sessions until they are deleted.
type SessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	expiration := cache.NoExpiration
	var cleanup time.Duration
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl
	}
	return &SessionStore{cache: cache.New(expiration, cleanup)}
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Create starts a new session awaiting the first photo, replacing any existing one.
func (s *SessionStore) Create(chatID int64, firstUser, secondUser string, replyTo int) domain.Session {
	sess := &domain.Session{
		ChatID:         chatID,
		CorrelationID:  uuid.NewString(),
		FirstUser:      firstUser,
		SecondUser:     secondUser,
		Step:           domain.StepAwaitingFirstPhoto,
		ReplyToMessage: replyTo,
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.SetDefault(sessionKey(chatID), sess)
	return *sess
}

// Get returns a copy of the chat's session.
func (s *SessionStore) Get(chatID int64) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(chatID)
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return *sess, nil
}

// SetFirstImage stores the first avatar and advances to the second photo.
// It does nothing when the chat has no session.
func (s *SessionStore) SetFirstImage(chatID int64, img image.Image) {
	s.update(chatID, func(sess *domain.Session) {
		sess.FirstImage = img
		sess.Step = domain.StepAwaitingSecondPhoto
	})
}

// SetSecondImage stores the second avatar. It does nothing when the chat has no session.
func (s *SessionStore) SetSecondImage(chatID int64, img image.Image) {
	s.update(chatID, func(sess *domain.Session) {
		sess.SecondImage = img
	})
}

// Delete removes the chat's session if there is one.
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionKey(chatID))
}

// Count returns the number of stored sessions, including expired ones
// that have not been cleaned up yet.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}

func (s *SessionStore) lookup(chatID int64) (*domain.Session, bool) {
	v, ok := s.cache.Get(sessionKey(chatID))
	if !ok {
		return nil, false
	}
	sess, ok := v.(*domain.Session)
	return sess, ok
}

func (s *SessionStore) update(chatID int64, fn func(*domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(chatID)
	if !ok {
		return
	}
	updated := *sess
	fn(&updated)
	s.cache.SetDefault(sessionKey(chatID), &updated)
}
