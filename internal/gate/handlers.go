// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package gate

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/constants"
	"github.com/wardenhq/warden/internal/platform/respond"
	"github.com/wardenhq/warden/internal/session"
	"github.com/wardenhq/warden/pkg/uuidv7"
)

// # Login Lifecycle Handlers

/*
Login starts the provider authentication flow.

Description: Mints a fresh CSRF state token, parks it on the session, and
redirects the browser to the provider consent page. In development mode the
provider is never contacted; the browser goes straight back to the root.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
*/
func (gate *Gate) Login(writer http.ResponseWriter, request *http.Request) {
	if gate.cfg.DevMode {
		http.Redirect(writer, request, constants.RouteRoot, http.StatusFound)
		return
	}

	sessionID, record, err := gate.sessions.Load(request)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	if record == nil {
		record = &session.Record{}
	}

	state := uuidv7.New()
	record.OAuthState = state

	if _, err := gate.sessions.Save(request.Context(), writer, sessionID, record); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	http.Redirect(writer, request, gate.idp.LoginURL(state), http.StatusFound)
}

/*
Callback completes the provider authentication flow.

Description: Verifies the CSRF state against the session, exchanges the
authorization code for a profile, writes the profile to the session, and
replays the parked pre-login path. Every failure path lands back on the
login route; the callback never renders an error page of its own.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
*/
func (gate *Gate) Callback(writer http.ResponseWriter, request *http.Request) {
	sessionID, record, err := gate.sessions.Load(request)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	state := request.URL.Query().Get("state")
	if record == nil || record.OAuthState == "" || state == "" || record.OAuthState != state {
		gate.log.Warn("oauth_state_mismatch", slog.String("session_id", sessionID))
		http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
		return
	}

	code := request.URL.Query().Get("code")
	if code == "" {
		// The provider declined or the user cancelled consent.
		gate.log.Warn("oauth_callback_missing_code",
			slog.String("provider_error", request.URL.Query().Get("error")),
		)
		http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
		return
	}

	profile, err := gate.idp.FetchProfile(request.Context(), code)
	if err != nil {
		gate.log.Error("oauth_profile_fetch_failed",
			slog.String("provider", gate.idp.Name()),
			slog.Any("error", err),
		)
		http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
		return
	}

	destination := record.AuthRedirect
	if !safeRedirect(destination) {
		destination = constants.RouteRoot
	}

	// One-shot fields: the state and the parked path are both consumed here.
	record.Profile = profile
	record.OAuthState = ""
	record.AuthRedirect = ""

	if _, err := gate.sessions.Save(request.Context(), writer, sessionID, record); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	gate.log.Info("user_authenticated",
		slog.String("provider", profile.Provider),
		slog.String("user_id", profile.ID),
	)

	http.Redirect(writer, request, destination, http.StatusFound)
}

/*
Logout destroys the session and returns the browser to the application root.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
*/
func (gate *Gate) Logout(writer http.ResponseWriter, request *http.Request) {
	sessionID, _, err := gate.sessions.Load(request)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	if err := gate.sessions.Clear(request.Context(), writer, sessionID); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	http.Redirect(writer, request, constants.RouteRoot, http.StatusFound)
}

// safeRedirect reports whether the parked path is a same-origin absolute
// path. Anything else (schemes, protocol-relative URLs) is discarded so the
// callback can never become an open redirect.
func safeRedirect(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
