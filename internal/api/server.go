// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package api wires together the HTTP router, middleware chain, the
authentication gate, and the protected application surface into a runnable
[http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Route taxonomy:

  - Public: /health, /ready, /login, /logout, and the provider callback.
  - Protected: everything else, guarded by the gate middleware.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wardenhq/warden/internal/gate"
	"github.com/wardenhq/warden/internal/platform/config"
	"github.com/wardenhq/warden/internal/platform/constants"
	"github.com/wardenhq/warden/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the handler sets mounted by the server.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when session storage is healthy.
	Readiness http.HandlerFunc

	// Gate owns the authentication decision and the login lifecycle routes.
	Gate *gate.Gate

	// App is the protected application surface mounted behind the gate.
	App http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Authentication Lifecycle
	// Public by necessity: a browser must be able to reach these without a
	// session, or login could never begin.
	r.Get(constants.RouteLogin, h.Gate.Login)
	r.Get(constants.RouteLogout, h.Gate.Logout)
	r.Get(cfg.CallbackPath, h.Gate.Callback)

	// # Protected Surface
	// Everything else passes through the gate.
	r.Group(func(protected chi.Router) {
		protected.Use(h.Gate.Protect)
		protected.Get("/api/v1/me", Me)
		protected.Handle("/*", h.App)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the composed handler for in-process testing.
func (s *Server) Router() http.Handler { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
