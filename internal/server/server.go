// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/telemetry"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 64 << 10

// Options configures the HTTP backend.
type Options struct {
	// Listen is the bind address, e.g. "127.0.0.1:8080".
	Listen string
	// RateLimit is submissions per second per client; zero disables limiting.
	RateLimit float64
	// Burst is the token bucket size.
	Burst int
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// AllowedOrigins are the sites allowed to embed the widget.
	AllowedOrigins []string
	// RevealInterval is sent with progressive replies so the widget types
	// them out at the same pace as the terminal front ends.
	RevealInterval time.Duration
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger.Named("server")
		}
	}
}

// WithGatherer sets the registry served on /metrics. Without one, /metrics
// is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithUsage reports token usage on /api/history.
func WithUsage(u *telemetry.UsageTracker) Option {
	return func(s *Server) {
		s.usage = u
	}
}

// Server is the widget backend.
type Server struct {
	sess     *session.Session
	opts     Options
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	usage    *telemetry.UsageTracker

	router     chi.Router
	httpServer *http.Server
}

// New creates a server for sess. The session should render through a
// render.Discard sink with an instant revealer, since the browser does its
// own rendering.
func New(sess *session.Session, opts Options, options ...Option) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		sess:   sess,
		opts:   opts,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(&CORSConfig{AllowedOrigins: s.opts.AllowedOrigins}))
	r.Use(MaxBodyMiddleware(s.opts.MaxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/greeting", s.handleGreeting)
		r.Get("/history", s.handleHistory)
		r.Get("/transcript", s.handleTranscript)
		r.Get("/quick-actions", s.handleQuickActions)

		r.Group(func(r chi.Router) {
			if s.opts.RateLimit > 0 {
				r.Use(RateLimitMiddleware(NewRateLimiter(s.opts.RateLimit, s.opts.Burst), s.logger))
			}
			r.Post("/messages", s.handleMessage)
			r.Post("/quick-actions/{index}", s.handleQuickAction)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	s.router = r
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled. Requests already running when
// ctx ends keep their own contexts and finish within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	base := context.WithoutCancel(ctx)
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("addr", ln.Addr().String()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
