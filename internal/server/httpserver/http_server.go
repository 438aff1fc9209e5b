// Package httpserver wires the docsite API onto an http.Server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/observability"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	smw "git.home.luguber.info/inful/docsite/internal/server/middleware"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Options configures the server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// PrometheusHandler is mounted at /metrics when non-nil.
	PrometheusHandler http.Handler

	Logger *slog.Logger
}

// Server serves the read API for one Site.
type Server struct {
	opts    Options
	logger  *slog.Logger
	handler http.Handler
	srv     *http.Server

	mu   sync.Mutex
	addr net.Addr
}

// New builds the route table for s.
func New(s *site.Site, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	adapter := ferrors.NewHTTPErrorAdapter(logger)
	content := handlers.NewContentHandlers(s, adapter)
	monitoring := handlers.NewMonitoringHandlers(s.Manifest(), adapter)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pages", content.HandlePage)
	mux.HandleFunc("GET /api/pages/{slug...}", content.HandlePage)
	mux.HandleFunc("GET /api/documents/{slug...}", content.HandleDocument)
	mux.HandleFunc("GET /api/tree", content.HandleTree)
	mux.HandleFunc("GET /api/tree/{slug...}", content.HandleTree)
	mux.HandleFunc("GET /api/nav", content.HandleNav)
	mux.HandleFunc("GET /api/breadcrumbs", content.HandleBreadcrumbs)
	mux.HandleFunc("GET /api/breadcrumbs/{slug...}", content.HandleBreadcrumbs)
	mux.HandleFunc("GET /healthz", monitoring.HandleHealthCheck)
	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	return &Server{
		opts:    opts,
		logger:  logger,
		handler: withManifestID(s.Manifest().ID, smw.Chain(logger, adapter)(mux)),
	}
}

func withManifestID(id string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(observability.WithManifestID(r.Context(), id)))
	})
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start binds the listen address and serves in the background. Binding
// happens before Start returns so address conflicts surface immediately.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "http startup failed").
			WithContext("addr", s.opts.Addr).
			Build()
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", logfields.Error(err))
		}
	}()
	s.logger.Info("HTTP server started", logfields.ListenAddr(ln.Addr().String()))
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Run starts the server and blocks until ctx is canceled, then shuts down
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
