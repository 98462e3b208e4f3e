// Package auth handles admin login for the club console: a single bcrypt
// credential from configuration and ephemeral in-memory sessions. Losing
// sessions on restart just means logging in again.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"
)

const (
	sessionCookieName      = "noball_admin_session"
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
)

type sessionRecord struct {
	Username  string
	ExpiresAt time.Time
}

// Store keeps active admin sessions in memory.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]sessionRecord
	ttl         time.Duration
	secure      bool
	cleanupOnce sync.Once
}

// NewStore builds a session store. secure controls the cookie's Secure
// flag; development runs over plain HTTP.
func NewStore(ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Store{
		sessions: make(map[string]sessionRecord),
		ttl:      ttl,
		secure:   secure,
	}
}

// Create starts a session for username and sets the cookie.
func (s *Store) Create(w http.ResponseWriter, username string) error {
	s.startCleanup()

	token, err := newSessionToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.ttl)

	s.mu.Lock()
	// One session per admin account.
	for t, rec := range s.sessions {
		if rec.Username == username {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = sessionRecord{Username: username, ExpiresAt: expiresAt}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// Valid reports whether the request carries a live session.
func (s *Store) Valid(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	s.mu.RLock()
	rec, ok := s.sessions[cookie.Value]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(rec.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
		return false
	}
	return true
}

// Clear ends the request's session and expires the cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func (s *Store) startCleanup() {
	s.cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				s.mu.Lock()
				for token, rec := range s.sessions {
					if now.After(rec.ExpiresAt) {
						delete(s.sessions, token)
					}
				}
				s.mu.Unlock()
			}
		}()
	})
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
