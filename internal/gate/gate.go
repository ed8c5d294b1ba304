// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package gate implements the authentication gate guarding the application.

Every protected request passes through exactly one of four terminal states:

  - Bypassed: development mode is active; a synthetic identity is injected.
  - Unauthenticated: no usable session profile; the original path is parked
    on the session and the browser is redirected to the login route.
  - Forbidden: the session carries a profile whose email falls outside the
    allow-list; the request ends with a 403 envelope.
  - Authorized: the derived identity is attached to the request context and
    the request proceeds to the application.

The gate never renders application content itself. Identity derivation is a
pure function of the session profile, recomputed per request and memoized on
the context so downstream middleware reads the same value.
*/
package gate

import (
	"log/slog"
	"net/http"

	"github.com/wardenhq/warden/internal/authz"
	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/config"
	"github.com/wardenhq/warden/internal/platform/constants"
	"github.com/wardenhq/warden/internal/platform/ctxutil"
	"github.com/wardenhq/warden/internal/platform/respond"
	"github.com/wardenhq/warden/internal/provider"
	"github.com/wardenhq/warden/internal/session"
)

// # Gate

// Gate owns the per-request authentication decision and the login lifecycle
// handlers around it.
type Gate struct {
	allow    *authz.Set
	sessions *session.Manager
	idp      provider.Provider
	cfg      *config.Config
	log      *slog.Logger
}

// New constructs the [Gate].
//
// idp may be nil only when cfg.DevMode is set; the bypass never touches the
// provider.
func New(allow *authz.Set, sessions *session.Manager, idp provider.Provider, cfg *config.Config, log *slog.Logger) *Gate {
	return &Gate{
		allow:    allow,
		sessions: sessions,
		idp:      idp,
		cfg:      cfg,
		log:      log,
	}
}

// # Protection Middleware

/*
Protect is the middleware enforcing the gate on every wrapped route.

Description: Resolves the session, derives the request identity, checks it
against the allow-list, and dispatches to exactly one terminal state. A
request that already carries a derived identity (an upstream Protect in the
same chain) passes through untouched.

Parameters:
  - next: http.Handler

Returns:
  - http.Handler: The guarded handler
*/
func (gate *Gate) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		// Identity is derived at most once per request.
		if ctxutil.GetUserInfo(request.Context()) != nil {
			next.ServeHTTP(writer, request)
			return
		}

		if gate.cfg.DevMode {
			info := identity.Dev(gate.cfg.DevUserEmail)
			next.ServeHTTP(writer, request.WithContext(
				ctxutil.WithUserInfo(request.Context(), &info),
			))
			return
		}

		sessionID, record, err := gate.sessions.Load(request)
		if err != nil {
			respond.Error(writer, request, apperr.Internal(err))
			return
		}

		if !record.Authenticated() {
			gate.redirectToLogin(writer, request, sessionID, record)
			return
		}

		info := identity.FromProfile(record.Profile)
		if !gate.allow.IsAuthorized(info.Email) {
			gate.log.Warn("gate_access_denied",
				slog.String("user_id", info.UserID),
				slog.String("path", request.URL.Path),
			)
			respond.Error(writer, request, apperr.Forbidden("Your account is not authorized to access this application"))
			return
		}

		next.ServeHTTP(writer, request.WithContext(
			ctxutil.WithUserInfo(request.Context(), &info),
		))
	})
}

// redirectToLogin parks the originally requested path on the session so the
// callback can replay it, then sends the browser to the login route.
func (gate *Gate) redirectToLogin(writer http.ResponseWriter, request *http.Request, sessionID string, record *session.Record) {
	if record == nil {
		record = &session.Record{}
	}
	record.AuthRedirect = request.URL.RequestURI()

	if _, err := gate.sessions.Save(request.Context(), writer, sessionID, record); err != nil {
		// The parked path is a convenience; losing it must not block login.
		gate.log.Warn("gate_redirect_save_failed", slog.Any("error", err))
	}

	http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
}
