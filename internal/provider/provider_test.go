// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

// White-box tests: the GitHub provider's API base and OAuth endpoint are
// pointed at local test servers here.
package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/config"
)

func githubTestConfig() *config.Config {
	return &config.Config{
		OAuthClientID:     "client-id",
		OAuthClientSecret: "client-secret",
		OAuthCallbackURL:  "https://warden.example/auth/redirect",
	}
}

// githubFixture stands up a fake token endpoint and REST API, and rewires a
// GitHub provider against them.
func githubFixture(t *testing.T, api http.HandlerFunc) *GitHub {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"access_token": "test-access-token",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/", api)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	idp := NewGitHub(githubTestConfig())
	idp.apiBase = server.URL
	idp.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  server.URL + "/oauth/authorize",
		TokenURL: server.URL + "/oauth/token",
	}
	return idp
}

/*
TestGitHub_LoginURL verifies the consent URL carries the client ID, redirect,
and CSRF state.
*/
func TestGitHub_LoginURL(t *testing.T) {
	idp := NewGitHub(githubTestConfig())

	url := idp.LoginURL("state-123")

	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "state=state-123")
	assert.True(t, strings.HasPrefix(url, "https://github.com/login/oauth/authorize"))
}

/*
TestGitHub_FetchProfile verifies the flat-shaped profile built from /user.
*/
func TestGitHub_FetchProfile(t *testing.T) {
	idp := githubFixture(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/user", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":    1234567,
			"login": "octocat",
			"name":  "Octo Cat",
			"email": "octocat@example.com",
		})
	})

	profile, err := idp.FetchProfile(context.Background(), "code-456")
	require.NoError(t, err)

	assert.Equal(t, "1234567", profile.ID)
	assert.Equal(t, identity.ProviderGitHub, profile.Provider)
	assert.Equal(t, "Octo Cat", profile.DisplayName)
	assert.Equal(t, "octocat@example.com", profile.Email)
	assert.Empty(t, profile.Emails)
}

/*
TestGitHub_FetchProfile_PrivateEmail verifies the /user/emails fallback for
accounts whose primary address is private.
*/
func TestGitHub_FetchProfile_PrivateEmail(t *testing.T) {
	idp := githubFixture(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/user":
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"id":    1234567,
				"login": "octocat",
			})
		case "/user/emails":
			_ = json.NewEncoder(writer).Encode([]map[string]any{
				{"email": "unverified@example.com", "primary": false, "verified": false},
				{"email": "octocat@example.com", "primary": true, "verified": true},
			})
		default:
			t.Fatalf("unexpected path %s", request.URL.Path)
		}
	})

	profile, err := idp.FetchProfile(context.Background(), "code-456")
	require.NoError(t, err)

	assert.Equal(t, "octocat@example.com", profile.Email)
	// No display name on the account: the login stands in.
	assert.Equal(t, "octocat", profile.DisplayName)
}

/*
TestGitHub_FetchProfile_APIError verifies non-200 API responses surface as
errors.
*/
func TestGitHub_FetchProfile_APIError(t *testing.T) {
	idp := githubFixture(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
	})

	_, err := idp.FetchProfile(context.Background(), "code-456")
	assert.Error(t, err)
}

/*
TestSelect_GitHub verifies name-based selection for the non-discovery
provider. The Google paths perform live OIDC discovery and are not
constructed here.
*/
func TestSelect_GitHub(t *testing.T) {
	cfg := githubTestConfig()
	cfg.Provider = "GitHub" // case-insensitive

	idp, err := Select(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, identity.ProviderGitHub, idp.Name())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
