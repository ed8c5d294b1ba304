// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package identity normalizes provider-shaped OAuth profiles into the canonical
per-request identity record consumed by the application.

It handles the two supported provider payload shapes and derives the
pseudonymous analytics identifier used by downstream reporting.

Architecture:

  - Profile: the provider-shaped record stored alongside the session.
  - ProfileAdapter: one small capability per provider, isolating payload
    shape differences from the normalizer.
  - UserInfo: the derived, request-scoped identity attached to the context.

The package is pure: no I/O, no clocks, no randomness. Every function is a
deterministic mapping from its inputs.
*/
package identity

// # Provider Profile

// EmailEntry is a single email slot in a Google-shaped profile.
type EmailEntry struct {
	// Value is the raw email address.
	Value string `json:"value"`
}

// Profile is the provider-shaped identity payload received from the OAuth
// exchange. It lives for the length of the session and is serialized into
// the session record verbatim.
//
// # Shape Differences
//
// Google places addresses under Emails[].Value; GitHub exposes a single flat
// Email field. Both shapes coexist here so the record round-trips through
// the store without loss; [ProfileAdapter] picks the right one.
type Profile struct {
	// ID is the provider-assigned stable identifier.
	ID string `json:"id"`

	// Provider names the issuing provider ("google" or "github").
	Provider string `json:"provider"`

	// DisplayName is informational only (logging, debugging).
	DisplayName string `json:"display_name,omitempty"`

	// Email is the flat address slot (GitHub shape).
	Email string `json:"email,omitempty"`

	// Emails is the list-shaped address slot (Google shape).
	Emails []EmailEntry `json:"emails,omitempty"`
}

// PrimaryEmail resolves the profile's first email through the adapter
// matching its provider. It returns an empty string for a malformed or
// email-less profile (the authorization layer fails closed on that).
func (p *Profile) PrimaryEmail() string {
	if p == nil {
		return ""
	}
	return AdapterFor(p.Provider).ExtractEmail(p)
}
