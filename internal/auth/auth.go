// Package auth simulates a sign-in flow. There are no credentials: Login
// waits, fabricates a user and persists it so favorites become available.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/devsetup/internal/store"
)

// Provider is the identity provider a mock user signed in with.
type Provider string

const (
	GitHub Provider = "github"
	Google Provider = "google"
)

// DefaultDelay is how long Login pretends to talk to the provider.
const DefaultDelay = time.Second

var (
	ErrNotSignedIn     = errors.New("not signed in")
	ErrUnknownProvider = errors.New("unknown provider")
)

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case GitHub, Google:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (valid: github, google)", ErrUnknownProvider, s)
}

// DisplayName is the provider's label.
func (p Provider) DisplayName() string {
	switch p {
	case GitHub:
		return "GitHub"
	case Google:
		return "Google"
	}
	return string(p)
}

// User is the mock signed-in user.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Avatar   string   `json:"avatar"`
	Provider Provider `json:"provider"`
}

// Session owns the current user. It is read from the store once at creation
// and kept in sync on every change.
type Session struct {
	kv    store.KV
	delay time.Duration
	rand  func() string

	mu   sync.RWMutex
	user *User
}

// Option configures a Session.
type Option func(*Session)

// WithDelay overrides the simulated login delay.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// NewSession loads any persisted user from kv. A stored value that does not
// decode is logged and treated as signed out.
func NewSession(kv store.KV, opts ...Option) *Session {
	s := &Session{kv: kv, delay: DefaultDelay, rand: randomToken}
	for _, opt := range opts {
		opt(s)
	}

	var u User
	ok, err := store.GetJSON(kv, store.KeyUser, &u)
	switch {
	case err != nil:
		slog.Warn("ignoring stored user", "err", err)
	case ok && u.ID != "":
		s.user = &u
	}
	return s
}

// User returns the signed-in user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// SignedIn reports whether a user is present.
func (s *Session) SignedIn() bool {
	_, ok := s.User()
	return ok
}

// Login waits for the configured delay, then fabricates and persists a user.
// Cancelling ctx during the wait aborts without changing state.
func (s *Session) Login(ctx context.Context, p Provider) (User, error) {
	if p != GitHub && p != Google {
		return User{}, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return User{}, ctx.Err()
		case <-timer.C:
		}
	}

	token := s.rand()
	u := User{
		ID:       "user_" + token,
		Name:     p.DisplayName() + " User",
		Email:    "user_" + token + "@example.com",
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=" + s.rand(),
		Provider: p,
	}
	if err := store.SetJSON(s.kv, store.KeyUser, u); err != nil {
		return User{}, fmt.Errorf("save user: %w", err)
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	slog.Debug("signed in", "provider", p, "user", u.ID)
	return u, nil
}

// Logout removes the user and the favorites that were gated behind it.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(store.KeyUser); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.kv.Delete(store.KeyFavorites); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	s.user = nil
	return nil
}

// Profile holds optional profile changes. Nil fields are left unchanged.
type Profile struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Update applies a partial profile change to the signed-in user.
func (s *Session) Update(p Profile) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, ErrNotSignedIn
	}
	u := *s.user
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if err := store.SetJSON(s.kv, store.KeyUser, u); err != nil {
		return User{}, fmt.Errorf("save user: %w", err)
	}
	s.user = &u
	return u, nil
}

// randomToken returns a short lowercase alphanumeric token.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
