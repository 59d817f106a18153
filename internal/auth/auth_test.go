package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/prefs"
	"github.com/marcus/devsetup/internal/store"
)

func TestLoginFabricatesAndPersistsUser(t *testing.T) {
	kv := store.NewMemory()
	s := NewSession(kv, WithDelay(0))
	s.rand = func() string { return "abc123" }

	u, err := s.Login(context.Background(), GitHub)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	want := User{
		ID:       "user_abc123",
		Name:     "GitHub User",
		Email:    "user_abc123@example.com",
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=abc123",
		Provider: GitHub,
	}
	if u != want {
		t.Errorf("user = %+v, want %+v", u, want)
	}

	// a new session over the same store sees the user
	if got, ok := NewSession(kv).User(); !ok || got != want {
		t.Errorf("reloaded user = %+v, %v", got, ok)
	}
}

func TestLoginGoogleName(t *testing.T) {
	s := NewSession(store.NewMemory(), WithDelay(0))
	u, err := s.Login(context.Background(), Google)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if u.Name != "Google User" || !strings.HasPrefix(u.ID, "user_") || !strings.HasSuffix(u.Email, "@example.com") {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestLoginHonorsDelayAndCancel(t *testing.T) {
	s := NewSession(store.NewMemory(), WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Login(ctx, GitHub)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Login error = %v, want deadline exceeded", err)
	}
	if s.SignedIn() {
		t.Error("cancelled login should not sign in")
	}
}

func TestLoginRejectsUnknownProvider(t *testing.T) {
	s := NewSession(store.NewMemory(), WithDelay(0))
	if _, err := s.Login(context.Background(), "gitlab"); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestLogoutClearsUserAndFavorites(t *testing.T) {
	kv := store.NewMemory()
	s := NewSession(kv, WithDelay(0))
	if _, err := s.Login(context.Background(), GitHub); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	favs := prefs.NewFavorites(kv)
	favs.Add("a", catalog.React, nil)
	favs.Add("b", catalog.Vue, nil)
	hist := prefs.NewHistory(kv)
	hist.Add("npx create-react-app a", "a", catalog.React, nil)

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if s.SignedIn() {
		t.Error("still signed in after logout")
	}
	if _, ok, _ := kv.Get(store.KeyUser); ok {
		t.Error("user key still stored")
	}
	if got := favs.List(); len(got) != 0 {
		t.Errorf("favorites after logout = %v", got)
	}
	if got := hist.List(); len(got) != 1 {
		t.Errorf("history should survive logout, got %d entries", len(got))
	}
}

func TestCorruptStoredUserIsAnonymous(t *testing.T) {
	kv := store.NewMemory()
	kv.Set(store.KeyUser, "not-json")
	if NewSession(kv).SignedIn() {
		t.Error("corrupt user should read as signed out")
	}
}

func TestUpdateIsPartial(t *testing.T) {
	kv := store.NewMemory()
	s := NewSession(kv, WithDelay(0))

	name := "Ada"
	if _, err := s.Update(Profile{Name: &name}); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Update while signed out = %v", err)
	}

	before, _ := s.Login(context.Background(), Google)
	after, err := s.Update(Profile{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if after.Name != "Ada" || after.Email != before.Email || after.Avatar != before.Avatar {
		t.Errorf("Update changed too much: %+v -> %+v", before, after)
	}
	if got, _ := NewSession(kv).User(); got.Name != "Ada" {
		t.Errorf("persisted name = %q", got.Name)
	}
}

func TestParseProvider(t *testing.T) {
	if p, err := ParseProvider(" GitHub "); err != nil || p != GitHub {
		t.Errorf("ParseProvider = %q, %v", p, err)
	}
	if _, err := ParseProvider("twitter"); err == nil {
		t.Error("expected error for twitter")
	}
}
