// Package server exposes the evaluation engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quarkw/constfit/internal/contract"
)

// Server wraps the HTTP server for the evaluation API.
type Server struct {
	cfg  *contract.Config
	http *http.Server
}

// New builds a Server with its routes mounted.
func New(cfg *contract.Config) *Server {
	h := &apiHandler{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/constants", h.handleConstants)
		r.Post("/evaluate", h.handleEvaluate)
		r.Post("/evaluate/batch", h.handleEvaluateBatch)
	})

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.ServeAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the underlying handler, exposed for tests.
func (s *Server) Router() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
