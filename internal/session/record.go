// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package session implements session continuity for the gateway.

It covers the full lifecycle: a signed cookie carrying an opaque session ID,
a durable Redis-backed record store with an in-process fallback, and the
process-scoped selector that decides which store serves a given process.

Architecture:

  - Record: the serialized per-session state (profile + pre-login path).
  - Store: abstracted Get/Put/Delete contract with per-key atomicity.
  - Selector: lazily initialized, memoized store handle with degradation.
  - Manager: cookie codec threading records through the request lifecycle.

Session records are explicit values passed in and out of the gate's
transition function, never ambient mutable state on the request.
*/
package session

import (
	"encoding/json"
	"fmt"

	"github.com/wardenhq/warden/internal/identity"
)

// # Session Record

// Record is the state stored under one session ID.
//
// It is created on the first unauthenticated request and destroyed on logout
// or expiry. The zero Record is a valid anonymous session.
type Record struct {
	// Profile is the provider-shaped identity payload, set by the OAuth
	// callback. nil means the session is not authenticated.
	Profile *identity.Profile `json:"profile,omitempty"`

	// AuthRedirect is the originally requested pre-login path, replayed
	// after a successful provider callback and cleared on use.
	AuthRedirect string `json:"auth_redirect,omitempty"`

	// OAuthState is the CSRF state token for an in-flight provider
	// authentication, cleared when the callback completes.
	OAuthState string `json:"oauth_state,omitempty"`
}

// Authenticated reports whether the record carries a usable provider profile.
func (r *Record) Authenticated() bool {
	return r != nil && r.Profile != nil && r.Profile.ID != ""
}

// encode serializes a record for storage.
func encode(record *Record) ([]byte, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("session: failed to encode record: %w", err)
	}
	return payload, nil
}

// decode deserializes a stored record.
func decode(payload []byte) (*Record, error) {
	record := &Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("session: failed to decode record: %w", err)
	}
	return record, nil
}
