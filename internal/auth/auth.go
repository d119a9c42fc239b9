// Package auth implements the session gate in front of the presentation
// layer. A session is a boolean authorization with an expiry, created by a
// password check and destroyed only by explicit logout or expiry. The
// core never sees credentials; handlers pass the per-request session state
// down explicitly.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrBadPassword = errors.New("wrong password")

type Gate struct {
	password string
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
	now      func() time.Time
}

func NewGate(password string, ttl time.Duration) *Gate {
	return &Gate{
		password: password,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the password in constant time and mints a session token.
func (g *Gate) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return "", ErrBadPassword
	}
	token := uuid.NewString()
	g.mu.Lock()
	g.sessions[token] = g.now().Add(g.ttl)
	g.mu.Unlock()
	return token, nil
}

// Authorized reports whether the token names a live session. Expired
// sessions are dropped on sight.
func (g *Gate) Authorized(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	expiry, ok := g.sessions[token]
	if !ok {
		return false
	}
	if g.now().After(expiry) {
		delete(g.sessions, token)
		return false
	}
	return true
}

// Logout destroys the session. A second logout with the same token is a
// no-op.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.sessions, token)
	g.mu.Unlock()
}

// ActiveSessions returns the number of unexpired sessions.
func (g *Gate) ActiveSessions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	now := g.now()
	for _, expiry := range g.sessions {
		if !now.After(expiry) {
			n++
		}
	}
	return n
}
