// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package identity

import (
	"crypto/md5"
	"encoding/hex"
)

// # Derived Identity

const (
	// DevUserID is the fixed synthetic user ID used in development mode.
	DevUserID = "10"

	// analyticsSuffix is appended to the user ID before hashing. It exists
	// only to decouple the analytics namespace from raw provider IDs; it is
	// not a secret.
	analyticsSuffix = "library"
)

// UserInfo is the request-scoped identity record derived from a session's
// profile. It is recomputed on every request and never persisted.
type UserInfo struct {
	// UserID is the provider-assigned stable identifier.
	UserID string `json:"user_id"`

	// AnalyticsUserID is a one-way pseudonymized derivative of UserID,
	// safe to hand to external analytics.
	AnalyticsUserID string `json:"analytics_user_id"`

	// Email is the primary address extracted from the profile.
	Email string `json:"email"`
}

/*
FromProfile derives a [UserInfo] from a provider-shaped profile.

Description: Pure function of the profile. The email is extracted through
the [ProfileAdapter] matching the profile's provider; a malformed profile
yields an empty email (the authorization layer fails closed on it).

Parameters:
  - profile: *Profile

Returns:
  - UserInfo: Derived identity record
*/
func FromProfile(profile *Profile) UserInfo {
	adapter := AdapterFor(profileProvider(profile))
	userID := adapter.ExtractID(profile)

	return UserInfo{
		UserID:          userID,
		AnalyticsUserID: AnalyticsID(userID),
		Email:           adapter.ExtractEmail(profile),
	}
}

/*
Dev returns the fixed synthetic identity used when the development-mode
bypass is active.

Description: UserID is the constant [DevUserID]; the email is the configured
override so local sessions look realistic in downstream handlers.

Parameters:
  - overrideEmail: string

Returns:
  - UserInfo: Synthetic identity record
*/
func Dev(overrideEmail string) UserInfo {
	return UserInfo{
		UserID:          DevUserID,
		AnalyticsUserID: AnalyticsID(DevUserID),
		Email:           overrideEmail,
	}
}

// AnalyticsID computes the deterministic pseudonymous analytics identifier
// for a user ID.
//
// MD5 is retained deliberately: the digest is a pseudonymization handle with
// existing downstream data keyed on it, not a security boundary.
func AnalyticsID(userID string) string {
	sum := md5.Sum([]byte(userID + analyticsSuffix))
	return hex.EncodeToString(sum[:])
}

// profileProvider is a nil-safe accessor for Profile.Provider.
func profileProvider(profile *Profile) string {
	if profile == nil {
		return ""
	}
	return profile.Provider
}
