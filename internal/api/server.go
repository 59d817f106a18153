// Package api serves the configurator over a small JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/prefs"
	"github.com/marcus/devsetup/internal/stars"
	"github.com/marcus/devsetup/internal/store"
)

// Deps are the collaborators the server drives. Only KV is required.
type Deps struct {
	KV        store.KV
	Session   *auth.Session
	Generator *generator.Generator
	Stars     *stars.Client
}

// Server is the HTTP API server for devsetup.
type Server struct {
	config      Config
	http        *http.Server
	listener    net.Listener
	gen         *generator.Generator
	session     *auth.Session
	favorites   *prefs.Favorites
	history     *prefs.History
	stars       *stars.Client
	metrics     *Metrics
	rateLimiter *RateLimiter
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewServer creates a new Server with the given config and collaborators.
func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.KV == nil {
		return nil, errors.New("api: nil store")
	}
	if deps.Session == nil {
		deps.Session = auth.NewSession(deps.KV)
	}
	if deps.Generator == nil {
		deps.Generator = generator.New(nil)
	}
	if deps.Stars == nil {
		deps.Stars = stars.NewClient()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.RateLimitLogin <= 0 {
		cfg.RateLimitLogin = 30
	}

	s := &Server{
		config:      cfg,
		gen:         deps.Generator,
		session:     deps.Session,
		favorites:   prefs.NewFavorites(deps.KV),
		history:     prefs.NewHistory(deps.KV),
		stars:       deps.Stars,
		metrics:     NewMetrics(),
		rateLimiter: NewRateLimiter(),
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.ListenAddr
	}
	return s.listener.Addr().String()
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	// Periodically prune idle rate limit buckets
	go func() {
		defer close(s.done)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("cleanup panic", "panic", r)
			}
		}()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.rateLimiter.cleanup()
			}
		}
	}()

	return nil
}

// Shutdown gracefully stops the server and its background loop.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeBadRequest, "method not allowed")
	})

	// Health & metrics
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/metricz", s.handleMetrics).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Catalog
	v1.HandleFunc("/frameworks", s.handleListFrameworks).Methods("GET")
	v1.HandleFunc("/frameworks/{id}/features", s.handleListFeatures).Methods("GET")
	v1.HandleFunc("/presets", s.handleListPresets).Methods("GET")

	// Generation
	v1.HandleFunc("/commands", s.handleGenerate).Methods("POST")
	v1.HandleFunc("/preview", s.handlePreview).Methods("GET")
	v1.HandleFunc("/guide", s.handleGuide).Methods("GET")

	// History
	v1.HandleFunc("/history", s.handleListHistory).Methods("GET")
	v1.HandleFunc("/history", s.handleClearHistory).Methods("DELETE")
	v1.HandleFunc("/history/{id}", s.handleDeleteHistory).Methods("DELETE")

	// Favorites (signed-in only)
	v1.HandleFunc("/favorites", s.requireUser(s.handleListFavorites)).Methods("GET")
	v1.HandleFunc("/favorites", s.requireUser(s.handleCreateFavorite)).Methods("POST")
	v1.HandleFunc("/favorites/{id}", s.requireUser(s.handleDeleteFavorite)).Methods("DELETE")

	// Mock auth
	v1.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	v1.HandleFunc("/auth/logout", s.handleLogout).Methods("POST")
	v1.HandleFunc("/auth/me", s.handleMe).Methods("GET")
	v1.HandleFunc("/auth/me", s.requireUser(s.handleUpdateProfile)).Methods("PATCH")

	// Stars
	v1.HandleFunc("/stars", s.handleStars).Methods("GET")

	return chain(r,
		recoveryMiddleware,
		requestIDMiddleware,
		loggerMiddleware,
		metricsMiddleware(s.metrics),
		loggingMiddleware,
		corsMiddleware(newCORSPolicy(s.config.CORSAllowedOrigins)),
		maxBytesMiddleware(s.config.MaxBodyBytes),
		loginRateLimitMiddleware(s.rateLimiter, s.config.RateLimitLogin),
	)
}

// handleHealth returns a health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics returns a snapshot of server metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}
