package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// SessionStore maps opaque tokens to signed-in users.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	user    User
	expires time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Create starts a session for the user and returns its token.
func (s *SessionStore) Create(user User) string {
	token := generateToken()
	s.mu.Lock()
	s.sessions[token] = session{user: user, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Lookup returns the user behind a token. Expired sessions are dropped.
func (s *SessionStore) Lookup(token string) (User, bool) {
	if token == "" {
		return User{}, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return User{}, false
	}
	if s.now().After(sess.expires) {
		s.Invalidate(token)
		return User{}, false
	}
	return sess.user, true
}

// Update replaces the user stored for a live session, e.g. after a name
// change.
func (s *SessionStore) Update(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		sess.user = user
		s.sessions[token] = sess
	}
}

func (s *SessionStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
