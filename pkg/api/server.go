// Package api exposes the layout pipeline over HTTP.
//
// The server wraps a [pipeline.Runner] with a chi router:
//
//	POST /v1/arrange  run the placement pass for a spec
//	POST /v1/layout   run the full pipeline and return layout + artifacts
//	GET  /healthz     liveness probe
//
// Requests carry a [pipeline.Options] JSON body with the spec inlined as
// spec_toml. Errors map machine-readable codes to HTTP statuses, so
// clients can distinguish bad specs (400) from layout failures (422).
//
// [pipeline.Runner]: github.com/vadim-stepanov/grid/pkg/pipeline.Runner
// [pipeline.Options]: github.com/vadim-stepanov/grid/pkg/pipeline.Options
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vadim-stepanov/grid/pkg/cache"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// serve context is canceled.
const shutdownTimeout = 10 * time.Second

// Config configures the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes pipeline stages. A memory-cached runner is created
	// when nil.
	Runner *pipeline.Runner

	// Logger receives request and lifecycle logs.
	Logger *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server with its routes registered.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cache.NewMemoryCache(), nil, cfg.Logger)
	}

	s := &Server{
		runner: cfg.Runner,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/arrange", s.handleArrange)
		r.Post("/layout", s.handleLayout)
	})

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info("api listening", "addr", s.http.Addr)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
