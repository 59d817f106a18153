package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/marcus/devsetup/internal/prefs"
)

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.history.List()
	if entries == nil {
		entries = []prefs.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(); err != nil {
		logFor(r.Context()).Error("clear history", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	removed, err := s.history.Remove(id)
	if err != nil {
		logFor(r.Context()).Error("remove history", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to remove history entry")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "history entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs := s.favorites.List()
	if favs == nil {
		favs = []prefs.Favorite{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": favs})
}

// CreateFavoriteRequest is the body of POST /v1/favorites.
type CreateFavoriteRequest struct {
	Name      string   `json:"name"`
	Framework string   `json:"framework"`
	Features  []string `json:"features"`
}

func (s *Server) handleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	var req CreateFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, "name is required")
		return
	}
	fw, features, err := s.parseSelection(req.Framework, req.Features)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}

	fav, err := s.favorites.Add(name, fw, features)
	if err != nil {
		logFor(r.Context()).Error("add favorite", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to save favorite")
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	removed, err := s.favorites.Remove(id)
	if err != nil {
		logFor(r.Context()).Error("remove favorite", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to remove favorite")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "favorite not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
