// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

// Command api is the entry point for the Warden authentication gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Compile the authorization allow-list.
//  4. Wire the session layer (cookie codec + store selector).
//  5. Construct the identity provider (skipped in development mode).
//  6. Wire the gate and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wardenhq/warden/internal/api"
	"github.com/wardenhq/warden/internal/authz"
	"github.com/wardenhq/warden/internal/gate"
	"github.com/wardenhq/warden/internal/platform/config"
	"github.com/wardenhq/warden/internal/platform/constants"
	"github.com/wardenhq/warden/internal/platform/sec"
	"github.com/wardenhq/warden/internal/provider"
	"github.com/wardenhq/warden/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Warden] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("dev_mode", cfg.DevMode),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Authorization Allow-List ───────────────────────────────────────
	allow, err := authz.ParseList(cfg.AllowedDomains)
	must(log, err, "parse allowed domains")
	log.Info("allow_list_loaded", slog.Any("elements", allow.Elements()))

	// ── 4. Session Layer ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize cookie signer")

	// The durable store is dialed lazily by the selector, so an unreachable
	// Redis never blocks startup; the process degrades and retries instead.
	stores := session.NewSelector(cfg.RedisURL, log)
	sessions := session.NewManager(tokens, stores, cfg.IsProduction())

	// ── 5. Identity Provider ──────────────────────────────────────────────
	// The dev-mode bypass never contacts a provider, so none is constructed.
	var idp provider.Provider
	if !cfg.DevMode {
		idp, err = provider.Select(startupCtx, cfg, log)
		must(log, err, "initialize identity provider")
		log.Info("identity_provider_ready", slog.String("provider", idp.Name()))
	} else {
		log.Warn("dev_mode_enabled",
			slog.String("effect", "authentication and authorization are bypassed"),
			slog.String("dev_user_email", cfg.DevUserEmail),
		)
	}

	// ── 6. Gate & Handlers ────────────────────────────────────────────────
	authGate := gate.New(allow, sessions, idp, cfg, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSessionStore: func() error {
			return stores.Check(context.Background())
		},
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Gate:      authGate,
		App:       api.DefaultApp(),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
