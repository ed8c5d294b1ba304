// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestTokenService_RoundTrip verifies that a signed session ID verifies back to
the same ID.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "warden.app")
	require.NoError(t, err)

	token, err := service.SignSessionID("sid-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := service.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", sessionID)
}

/*
TestTokenService_RejectsTampering verifies signature and expiry enforcement.
*/
func TestTokenService_RejectsTampering(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "warden.app")
	require.NoError(t, err)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := service.VerifySessionToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "warden.app")
		require.NoError(t, err)

		token, err := other.SignSessionID("sid-123", time.Hour)
		require.NoError(t, err)

		_, err = service.VerifySessionToken(token)
		assert.Error(t, err)
	})

	t.Run("expired_token", func(t *testing.T) {
		token, err := service.SignSessionID("sid-123", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifySessionToken(token)
		assert.Error(t, err)
	})
}

/*
TestNewTokenService_EmptySecret verifies the constructor guard.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "warden.app")
	assert.Error(t, err)
}
