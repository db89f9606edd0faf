// Package api exposes the form fill service over HTTP. Everything here
// is transport plumbing: JSON and base64 handling, validation, and the
// mapping from fill errors to status codes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fillkit/fillkit/internal/config"
	"github.com/fillkit/fillkit/internal/pdf/fill"
)

// Filler is the part of the fill service the API needs.
type Filler interface {
	Fill(req fill.Request) (*fill.Result, error)
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	filler Filler
	log    *slog.Logger
	cfg    *config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(filler Filler, log *slog.Logger, cfg *config.Config) *Server {
	s := &Server{
		filler: filler,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/v1/fill", s.handleFill)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
