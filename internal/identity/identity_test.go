// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wardenhq/warden/internal/identity"
)

/*
TestAdapterFor_EmailExtraction verifies that each adapter reads the email
from its provider's payload shape, and only that shape.
*/
func TestAdapterFor_EmailExtraction(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		profile  *identity.Profile
		email    string
	}{
		{
			"google_list_shape",
			identity.ProviderGoogle,
			&identity.Profile{Emails: []identity.EmailEntry{{Value: "alice@example.com"}, {Value: "second@example.com"}}},
			"alice@example.com",
		},
		{
			"google_empty_list",
			identity.ProviderGoogle,
			&identity.Profile{},
			"",
		},
		{
			"google_ignores_flat_slot",
			identity.ProviderGoogle,
			&identity.Profile{Email: "flat@example.com"},
			"",
		},
		{
			"github_flat_shape",
			identity.ProviderGitHub,
			&identity.Profile{Email: "bob@example.com"},
			"bob@example.com",
		},
		{
			"github_ignores_list_slot",
			identity.ProviderGitHub,
			&identity.Profile{Emails: []identity.EmailEntry{{Value: "list@example.com"}}},
			"",
		},
		{
			"unknown_provider_defaults_to_google",
			"gitlab",
			&identity.Profile{Emails: []identity.EmailEntry{{Value: "carol@example.com"}}},
			"carol@example.com",
		},
		{
			"nil_profile",
			identity.ProviderGoogle,
			nil,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := identity.AdapterFor(tt.provider)
			assert.Equal(t, tt.email, adapter.ExtractEmail(tt.profile))
		})
	}
}

/*
TestProfile_PrimaryEmail verifies the adapter dispatch on the profile itself.
*/
func TestProfile_PrimaryEmail(t *testing.T) {
	google := &identity.Profile{
		Provider: identity.ProviderGoogle,
		Emails:   []identity.EmailEntry{{Value: "alice@example.com"}},
	}
	github := &identity.Profile{
		Provider: identity.ProviderGitHub,
		Email:    "bob@example.com",
	}

	assert.Equal(t, "alice@example.com", google.PrimaryEmail())
	assert.Equal(t, "bob@example.com", github.PrimaryEmail())
	assert.Empty(t, (*identity.Profile)(nil).PrimaryEmail())
}

/*
TestFromProfile verifies the full derivation: ID, pseudonymized analytics ID,
and email, and that the mapping is deterministic.
*/
func TestFromProfile(t *testing.T) {
	profile := &identity.Profile{
		ID:       "108234567890",
		Provider: identity.ProviderGoogle,
		Emails:   []identity.EmailEntry{{Value: "alice@example.com"}},
	}

	info := identity.FromProfile(profile)

	assert.Equal(t, "108234567890", info.UserID)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, identity.AnalyticsID("108234567890"), info.AnalyticsUserID)

	// Same profile, same derivation.
	assert.Equal(t, info, identity.FromProfile(profile))
}

/*
TestFromProfile_Malformed verifies that malformed profiles yield empty fields
instead of panicking; the authorization layer fails closed on them.
*/
func TestFromProfile_Malformed(t *testing.T) {
	info := identity.FromProfile(nil)

	assert.Empty(t, info.UserID)
	assert.Empty(t, info.Email)
	assert.NotEmpty(t, info.AnalyticsUserID) // digest of "" is still a stable value
}

/*
TestAnalyticsID verifies the digest is stable across calls and distinct
across users.
*/
func TestAnalyticsID(t *testing.T) {
	first := identity.AnalyticsID("user-1")

	assert.Equal(t, first, identity.AnalyticsID("user-1"))
	assert.NotEqual(t, first, identity.AnalyticsID("user-2"))
	assert.Len(t, first, 32) // hex-encoded 128-bit digest
}

/*
TestDev verifies the synthetic development identity.
*/
func TestDev(t *testing.T) {
	info := identity.Dev("dev@warden.local")

	assert.Equal(t, identity.DevUserID, info.UserID)
	assert.Equal(t, "dev@warden.local", info.Email)
	assert.Equal(t, identity.AnalyticsID(identity.DevUserID), info.AnalyticsUserID)
}
