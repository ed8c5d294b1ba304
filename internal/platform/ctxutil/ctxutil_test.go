// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_UserInfo verifies that the derived identity can be stored in context.
*/
func TestContext_UserInfo(t *testing.T) {
	ctx := context.Background()
	info := &identity.UserInfo{
		UserID:          "user-123",
		AnalyticsUserID: identity.AnalyticsID("user-123"),
		Email:           "user@example.com",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetUserInfo(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithUserInfo(ctx, info)
	retrieved := ctxutil.GetUserInfo(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "user@example.com", retrieved.Email)
}
