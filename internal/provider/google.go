// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package provider

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/config"
)

// googleIssuer is the fixed OIDC issuer for Google accounts.
const googleIssuer = "https://accounts.google.com"

// Google implements [Provider] through Google's OIDC endpoints.
//
// The email lands in the list-shaped Profile slot (Emails[0].Value), which
// is the payload shape the Google adapter expects.
type Google struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogle discovers Google's OIDC configuration and prepares the
// authorization-code flow.
func NewGoogle(context context.Context, cfg *config.Config) (*Google, error) {
	oidcProvider, err := oidc.NewProvider(context, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("provider: google oidc discovery failed: %w", err)
	}

	return &Google{
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: cfg.OAuthClientID}),
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthCallbackURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Name implements [Provider].
func (g *Google) Name() string { return identity.ProviderGoogle }

// LoginURL implements [Provider].
func (g *Google) LoginURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

/*
FetchProfile exchanges the authorization code and extracts identity claims
from the verified ID token.

Description: The ID token signature and audience are verified before any
claim is trusted; a token without an id_token extra is rejected outright.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - *identity.Profile: Google-shaped profile (Emails list slot)
  - error: Exchange, verification, or claim-parsing failures
*/
func (g *Google) FetchProfile(context context.Context, code string) (*identity.Profile, error) {
	token, err := g.oauth.Exchange(context, code)
	if err != nil {
		return nil, fmt.Errorf("provider: google code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("provider: google response missing id token")
	}

	idToken, err := g.verifier.Verify(context, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("provider: google id token verification failed: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("provider: google claims parsing failed: %w", err)
	}

	profile := &identity.Profile{
		ID:          idToken.Subject,
		Provider:    identity.ProviderGoogle,
		DisplayName: claims.Name,
	}
	if claims.Email != "" {
		profile.Emails = []identity.EmailEntry{{Value: claims.Email}}
	}

	return profile, nil
}
