// Package server provides the Flowsketch HTTP API.
//
// The API builds control-flow graphs from posted source text, persists
// them in a store, and serves the stored graphs in the supported output
// formats (JSON, DOT, SVG, PNG).
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowsketch/flowsketch/pkg/pipeline"
	"github.com/flowsketch/flowsketch/pkg/store"
)

// Config holds the configuration for the HTTP server.
type Config struct {
	Addr string // listen address (default: "127.0.0.1:8080")
}

// Server routes API requests to the pipeline runner and the graph store.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
	addr   string

	srv *http.Server
}

// NewServer creates a Server with all routes configured.
func NewServer(cfg Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		addr:   cfg.Addr,
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured address with
// timeouts to prevent resource exhaustion from slow clients.
func (s *Server) ListenAndServe() error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	s.logger.Info("listening", "addr", s.addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/graphs", func(r chi.Router) {
		r.Post("/", s.handleBuild)
		r.Get("/", s.handleList)

		r.Route("/{graphID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/dot", s.handleDOT)
			r.Get("/svg", s.handleSVG)
			r.Get("/png", s.handlePNG)
		})
	})

	return r
}
