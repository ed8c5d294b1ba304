// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package provider wraps the supported OAuth2 identity providers behind one
small interface.

Each provider owns its authorization-code flow end to end: building the
consent URL, exchanging the code, and fetching a provider-shaped
[identity.Profile]. The rest of the gateway treats authentication as an
opaque capability that yields a profile.

Architecture:

  - Provider: the common flow contract.
  - Google: OIDC discovery + verified ID token claims.
  - GitHub: plain OAuth2 + REST profile fetch.
  - Select: name-based construction with a warn-and-default policy.
*/
package provider

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/config"
)

// # Provider Contract

// Provider is the capability each identity provider implements.
type Provider interface {
	// Name returns the canonical provider name ("google" or "github").
	Name() string

	// LoginURL builds the provider consent URL carrying the CSRF state.
	LoginURL(state string) string

	/*
		FetchProfile completes the authorization-code exchange and returns
		the provider-shaped profile.

		Parameters:
		  - context: context.Context (bounds the exchange and profile fetch)
		  - code: string (authorization code from the callback)

		Returns:
		  - *identity.Profile: Provider-shaped identity payload
		  - error: Exchange or fetch failures
	*/
	FetchProfile(context context.Context, code string) (*identity.Profile, error)
}

// # Selection

/*
Select constructs the configured [Provider].

Description: An unsupported provider name is NOT fatal: it logs a warning
and substitutes the default (Google), so a typo in deployment config
degrades predictably instead of taking the gateway down.

Parameters:
  - context: context.Context (bounds OIDC discovery)
  - cfg: *config.Config
  - log: *slog.Logger

Returns:
  - Provider: Ready-to-use provider
  - error: Construction failures (e.g. OIDC discovery unreachable)
*/
func Select(context context.Context, cfg *config.Config, log *slog.Logger) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch name {
	case identity.ProviderGoogle:
		return NewGoogle(context, cfg)
	case identity.ProviderGitHub:
		return NewGitHub(cfg), nil
	default:
		log.Warn("unsupported_auth_provider",
			slog.String("configured", cfg.Provider),
			slog.String("substituted", identity.ProviderGoogle),
		)
		return NewGoogle(context, cfg)
	}
}
