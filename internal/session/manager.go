// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package session

import (
	"context"
	"net/http"
	"time"

	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/constants"
	"github.com/wardenhq/warden/pkg/uuidv7"
)

// # Cookie Codec

// CookieCodec signs and verifies session cookie values.
//
// # Why an interface?
//
// Defining the contract here decouples the session layer from the sec
// implementation and lets tests inject a trivial codec.
type CookieCodec interface {
	SignSessionID(sessionID string, timeToLive time.Duration) (string, error)
	VerifySessionToken(tokenString string) (string, error)
}

// Manager threads session records through the HTTP request lifecycle.
//
// It owns the cookie contract (name, attributes, signature) and delegates
// record persistence to whichever [Store] the [Selector] is serving.
type Manager struct {
	codec  CookieCodec
	stores *Selector
	secure bool
}

// NewManager constructs a session [Manager].
//
// secure controls the cookie's Secure attribute; pass true in production
// deployments behind TLS.
func NewManager(codec CookieCodec, stores *Selector, secure bool) *Manager {
	return &Manager{codec: codec, stores: stores, secure: secure}
}

/*
Load resolves the request's session, if any.

Description: A missing cookie, a tampered or expired signature, or an absent
store record all read as "no session"; none of them is an error. Store
connectivity failures do surface as errors.

Parameters:
  - request: *http.Request

Returns:
  - string: Session ID ("" when no valid cookie is present)
  - *Record: Stored session state (nil when no record exists)
  - error: Store failures only
*/
func (manager *Manager) Load(request *http.Request) (string, *Record, error) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", nil, nil
	}

	sessionID, err := manager.codec.VerifySessionToken(cookie.Value)
	if err != nil {
		// Forged or expired cookie: treat as anonymous, never as a failure.
		return "", nil, nil
	}

	record, err := manager.store(request.Context()).Get(request.Context(), sessionID)
	if err != nil {
		if isNotFound(err) {
			// The cookie outlived the server-side record; keep the ID so the
			// caller can start a fresh record under the same cookie.
			return sessionID, nil, nil
		}
		return "", nil, err
	}

	return sessionID, record, nil
}

/*
Save persists the record and, for new sessions, issues the signed cookie.

Description: An empty sessionID mints a fresh UUIDv7 and sets the cookie
with the attributes from the session contract (SameSite=Lax, HttpOnly,
year-long max-age).

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - sessionID: string ("" to create a new session)
  - record: *Record

Returns:
  - string: The effective session ID
  - error: Signing or persistence failures
*/
func (manager *Manager) Save(context context.Context, writer http.ResponseWriter, sessionID string, record *Record) (string, error) {
	isNew := sessionID == ""
	if isNew {
		sessionID = uuidv7.New()
	}

	if err := manager.store(context).Put(context, sessionID, record); err != nil {
		return "", err
	}

	if isNew {
		signedValue, err := manager.codec.SignSessionID(sessionID, constants.SessionCookieTTL)
		if err != nil {
			return "", err
		}
		http.SetCookie(writer, manager.cookie(signedValue, int(constants.SessionCookieTTL/time.Second)))
	}

	return sessionID, nil
}

/*
Clear destroys the session server-side and expires the cookie.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (manager *Manager) Clear(context context.Context, writer http.ResponseWriter, sessionID string) error {
	if sessionID != "" {
		if err := manager.store(context).Delete(context, sessionID); err != nil {
			return err
		}
	}

	http.SetCookie(writer, manager.cookie("", -1))
	return nil
}

// Stores exposes the selector for health probes.
func (manager *Manager) Stores() *Selector { return manager.stores }

// store resolves the backing [Store] through the memoized selector.
func (manager *Manager) store(context context.Context) Store {
	return manager.stores.Acquire(context)
}

// cookie builds the session cookie with the contract's fixed attributes.
func (manager *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.RouteRoot,
		MaxAge:   maxAge,
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// isNotFound reports whether err is the store's absence sentinel.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
