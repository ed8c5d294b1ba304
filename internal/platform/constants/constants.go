// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie naming, lifetimes, and store key taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "warden"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// SessionCookieName is the name of the cookie carrying the signed session ID.
	SessionCookieName = "warden_session"

	// SessionCookieTTL is the browser-side lifetime of the session cookie.
	// The cookie deliberately outlives the server-side record so the store
	// can garbage-collect stale sessions on its own schedule.
	SessionCookieTTL = 365 * 24 * time.Hour

	// SessionRecordTTL is the server-side lifetime of a session record.
	SessionRecordTTL = 7 * 24 * time.Hour

	// SessionIssuer is the standard 'iss' claim in signed session cookies.
	SessionIssuer = "warden.app"

	// StoreRetryCooldown is how long the session store selector waits before
	// re-attempting durable store initialization after a failure.
	StoreRetryCooldown = 5 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Store Key Prefixes

const (
	// RedisPrefixSession namespaces session records in the durable store.
	// The record kind is a fixed constant so operators can target it with
	// SCAN/TTL tooling.
	RedisPrefixSession = "gate:session:"
)

// # Routes

const (
	// RouteLogin is the login entry point unauthenticated users are sent to.
	RouteLogin = "/login"

	// RouteLogout clears the session and returns to the application root.
	RouteLogout = "/logout"

	// RouteRoot is the application root, the default post-login destination.
	RouteRoot = "/"
)
