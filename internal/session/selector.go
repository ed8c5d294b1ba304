// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wardenhq/warden/internal/platform/constants"
	redisstore "github.com/wardenhq/warden/internal/platform/redis"
)

// # Store Selection

// Selector is the process-scoped, lazily initialized session store handle.
//
// # Lifecycle
//
// The durable backend is dialed at most once per cooldown window, never per
// request. A successful dial is memoized for the remaining process lifetime;
// a failed dial degrades to the in-process [MemoryStore] and schedules a
// re-attempt after [constants.StoreRetryCooldown].
type Selector struct {
	redisURL string
	log      *slog.Logger
	cooldown time.Duration

	mu          sync.Mutex
	durable     *RedisStore
	fallback    *MemoryStore
	lastAttempt time.Time
	warnedOnce  bool
}

// NewSelector creates a [Selector]. An empty redisURL disables durable
// storage entirely: every acquisition serves the ephemeral fallback.
func NewSelector(redisURL string, log *slog.Logger) *Selector {
	selector := &Selector{
		redisURL: redisURL,
		log:      log,
		cooldown: constants.StoreRetryCooldown,
		fallback: NewMemoryStore(),
	}

	if redisURL == "" {
		log.Warn("session_store_durable_disabled",
			slog.String("reason", "no redis url configured"),
			slog.String("effect", "sessions will not survive process restart"),
		)
	}

	return selector
}

/*
Acquire returns the session [Store] serving this process.

Description: Returns the memoized durable store when available. Otherwise it
attempts one bounded-timeout initialization (respecting the cooldown) and
falls back to the ephemeral store on failure. The degradation is logged as
an operational signal, never swallowed silently.

Parameters:
  - context: context.Context (bounds the dial; a client disconnect abandons
    the attempt without side effects)

Returns:
  - Store: Durable store, or the in-process fallback
*/
func (selector *Selector) Acquire(context context.Context) Store {
	if selector.redisURL == "" {
		return selector.fallback
	}

	selector.mu.Lock()
	defer selector.mu.Unlock()

	if selector.durable != nil {
		return selector.durable
	}

	// Respect the cooldown so a dead backend is not re-dialed per request.
	if !selector.lastAttempt.IsZero() && time.Since(selector.lastAttempt) < selector.cooldown {
		return selector.fallback
	}
	selector.lastAttempt = time.Now()

	client, err := redisstore.NewClient(context, selector.redisURL, selector.log)
	if err != nil {
		// Log loudly on first degradation, quietly on scheduled re-attempts.
		if !selector.warnedOnce {
			selector.log.Warn("session_store_degraded",
				slog.String("fallback", "memory"),
				slog.String("effect", "sessions will not survive process restart"),
				slog.Any("error", err),
			)
			selector.warnedOnce = true
		} else {
			selector.log.Warn("session_store_retry_failed", slog.Any("error", err))
		}
		return selector.fallback
	}

	selector.durable = NewRedisStore(client)
	selector.log.Info("session_store_ready", slog.String("backend", selector.durable.Name()))
	return selector.durable
}

/*
Check reports the health of the configured session storage for readiness
probes.

Returns:
  - error: nil when the configured backend is serving; an error when durable
    storage is configured but the process is running degraded on memory
*/
func (selector *Selector) Check(context context.Context) error {
	if selector.redisURL == "" {
		// Ephemeral-only deployments are healthy by definition.
		return nil
	}

	selector.mu.Lock()
	durable := selector.durable
	selector.mu.Unlock()

	if durable == nil {
		return fmt.Errorf("session: durable store unavailable, serving from memory")
	}

	return redisstore.Ping(context, durable.client)
}
