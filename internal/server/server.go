// Package server exposes grammar enumeration over HTTP.
//
// # Endpoints
//
//	GET  /healthz                liveness and build version
//	GET  /v1/grammars/demo       the sample grammar as a JSON document
//	GET  /v1/grammars/{name}     a grammar document from the configured directory
//	POST /v1/generate            enumerate a grammar
//
// The generate body is a JSON object:
//
//	{
//	  "grammar": {"S": ["0A", "1B"], "A": ["0AA", "1S", "1"], "B": ["1BB", "0S", "0"]},
//	  "depth": 6,
//	  "derivations": false,
//	  "repetition": "counted",
//	  "low_memory": false,
//	  "formats": ["json"]
//	}
//
// Every field is optional: the sample grammar, depth 6 and JSON output are
// used when omitted. A single format may be requested; the response carries
// the rendered artifact and an X-Run-ID header naming the run in the logs.
//
// Errors are JSON objects {"code": "...", "error": "..."} with a 4xx status
// for invalid requests and 5xx otherwise.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
)

// keyPrefix scopes the server's cache entries away from the CLI's.
const keyPrefix = "api:"

// Server is the HTTP API.
type Server struct {
	config *Config
	runner *pipeline.Runner
	router chi.Router
	srv    *http.Server
}

// New returns a server that runs generations on runner. The runner's keyer
// is scoped so API entries do not mix with CLI entries in a shared backend.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	cfg := NewConfig(opts...)
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, keyPrefix)

	s := &Server{config: cfg, runner: runner}
	s.router = s.routes()
	s.srv = &http.Server{
		Addr:              cfg.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/grammars/demo", s.handleDemoGrammar)
		r.Get("/grammars/{name}", s.handleGrammar)
		r.Post("/generate", s.handleGenerate)
	})
	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen opens the configured address. Port 0 picks a free port.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.config.Addr(), err)
	}
	s.srv.Addr = ln.Addr().String()
	s.config.logger.Info("listening", "addr", s.srv.Addr, "max_depth", s.config.maxDepth)
	return ln, nil
}

// Addr returns the address the server listens on once Listen has run.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		s.config.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.config.logger.Info("server stopped")
	return err
}
