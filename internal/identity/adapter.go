// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package identity

// # Provider Shape Dispatch

// Supported provider names. Selection and defaulting live in the provider
// package; these constants only key the adapter lookup.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// ProfileAdapter extracts canonical identity fields from a provider-shaped
// [Profile].
//
// # Why an interface?
//
// Each OAuth provider returns a differently shaped payload. Modeling the
// difference as one small capability per provider keeps provider
// conditionals out of the normalizer entirely.
type ProfileAdapter interface {
	// ExtractEmail returns the profile's primary email, or "" if absent.
	ExtractEmail(profile *Profile) string

	// ExtractID returns the provider-assigned stable identifier.
	ExtractID(profile *Profile) string
}

// AdapterFor returns the [ProfileAdapter] for the named provider.
//
// Unknown names fall back to the Google adapter, mirroring the provider
// selection default.
func AdapterFor(provider string) ProfileAdapter {
	if provider == ProviderGitHub {
		return githubAdapter{}
	}
	return googleAdapter{}
}

// googleAdapter reads the list-shaped Google payload (emails[0].value).
type googleAdapter struct{}

func (googleAdapter) ExtractEmail(profile *Profile) string {
	if profile == nil || len(profile.Emails) == 0 {
		return ""
	}
	return profile.Emails[0].Value
}

func (googleAdapter) ExtractID(profile *Profile) string {
	if profile == nil {
		return ""
	}
	return profile.ID
}

// githubAdapter reads the flat GitHub payload (email).
type githubAdapter struct{}

func (githubAdapter) ExtractEmail(profile *Profile) string {
	if profile == nil {
		return ""
	}
	return profile.Email
}

func (githubAdapter) ExtractID(profile *Profile) string {
	if profile == nil {
		return ""
	}
	return profile.ID
}
