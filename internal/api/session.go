package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/marcus/devsetup/internal/auth"
)

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Provider string `json:"provider"`
}

// MeResponse describes the current mock session.
type MeResponse struct {
	SignedIn bool       `json:"signed_in"`
	User     *auth.User `json:"user,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}
	p, err := auth.ParseProvider(req.Provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}

	u, err := s.session.Login(r.Context(), p)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, ErrCodeCanceled, "login canceled")
			return
		}
		logFor(r.Context()).Error("login", "provider", p, "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to save user")
		return
	}

	s.metrics.RecordLogin()
	logFor(r.Context()).Info("signed in", "provider", p, "uid", u.ID)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(); err != nil {
		logFor(r.Context()).Error("logout", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.session.User()
	if !ok {
		writeJSON(w, http.StatusOK, MeResponse{})
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{SignedIn: true, User: &u})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p auth.Profile
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}
	u, err := s.session.Update(p)
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			writeError(w, http.StatusUnauthorized, ErrCodeSignupRequired, err.Error())
			return
		}
		logFor(r.Context()).Error("update profile", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
