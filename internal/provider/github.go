// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/config"
)

// githubAPIBase is the REST endpoint for profile lookups after the exchange.
const githubAPIBase = "https://api.github.com"

// GitHub implements [Provider] through GitHub's OAuth2 endpoints.
//
// GitHub is not an OIDC issuer, so after the code exchange the profile is
// fetched from the REST API. The email lands in the flat Profile slot.
type GitHub struct {
	oauth   *oauth2.Config
	apiBase string
}

// NewGitHub prepares the GitHub authorization-code flow.
func NewGitHub(cfg *config.Config) *GitHub {
	return &GitHub{
		apiBase: githubAPIBase,
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthCallbackURL,
			Endpoint:     githubendpoint.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
	}
}

// Name implements [Provider].
func (g *GitHub) Name() string { return identity.ProviderGitHub }

// LoginURL implements [Provider].
func (g *GitHub) LoginURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

/*
FetchProfile exchanges the authorization code and fetches the user's profile
from the GitHub REST API.

Description: When the account's primary email is private, /user returns an
empty email; a second call to /user/emails resolves the primary verified
address instead.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - *identity.Profile: GitHub-shaped profile (flat Email slot)
  - error: Exchange or API failures
*/
func (g *GitHub) FetchProfile(context context.Context, code string) (*identity.Profile, error) {
	token, err := g.oauth.Exchange(context, code)
	if err != nil {
		return nil, fmt.Errorf("provider: github code exchange failed: %w", err)
	}

	client := g.oauth.Client(context, token)

	var user struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := g.getJSON(context, client, "/user", &user); err != nil {
		return nil, err
	}

	email := user.Email
	if email == "" {
		email, err = g.primaryEmail(context, client)
		if err != nil {
			return nil, err
		}
	}

	displayName := user.Name
	if displayName == "" {
		displayName = user.Login
	}

	return &identity.Profile{
		ID:          strconv.FormatInt(user.ID, 10),
		Provider:    identity.ProviderGitHub,
		DisplayName: displayName,
		Email:       email,
	}, nil
}

// primaryEmail resolves the primary verified address for accounts that keep
// their email private. An account with no usable address yields ""; the
// authorization layer fails closed on it.
func (g *GitHub) primaryEmail(context context.Context, client *http.Client) (string, error) {
	var entries []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := g.getJSON(context, client, "/user/emails", &entries); err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.Primary && entry.Verified {
			return entry.Email, nil
		}
	}

	return "", nil
}

// getJSON performs an authenticated GET against the GitHub API.
func (g *GitHub) getJSON(context context.Context, client *http.Client, path string, target interface{}) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, g.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("provider: github request build failed: %w", err)
	}
	request.Header.Set("Accept", "application/vnd.github+json")

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("provider: github api call failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("provider: github api returned status %d for %s", response.StatusCode, path)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("provider: github response decoding failed: %w", err)
	}

	return nil
}
