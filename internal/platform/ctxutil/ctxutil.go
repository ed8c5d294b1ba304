// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/wardenhq/warden/internal/identity"
	"github.com/wardenhq/warden/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithUserInfo returns a new context with the derived request identity attached.
//
// The gate calls this exactly once per request, after authorization succeeds.
func WithUserInfo(ctx context.Context, info *identity.UserInfo) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUserInfo, info)
}

// GetUserInfo retrieves the [*identity.UserInfo] from the [context.Context].
//
// A nil result means the request never passed the gate (or is anonymous).
func GetUserInfo(ctx context.Context) *identity.UserInfo {
	info, ok := ctx.Value(ctxkey.KeyUserInfo).(*identity.UserInfo)
	if !ok {
		return nil
	}
	return info
}
