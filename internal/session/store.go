// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package session

import (
	"context"
)

// # Session Data Access

// Store defines the data access contract for session records.
//
// Implementations must provide per-key atomicity: reads and writes for a
// single session ID are serialized relative to each other, while operations
// on different sessions are fully independent.
type Store interface {

	/*
		Get returns the record stored under the given session ID.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *Record: Hydrated session state
		  - error: apperr.NotFound when absent or expired, or store failures
	*/
	Get(context context.Context, sessionID string) (*Record, error)

	/*
		Put stores (or replaces) the record under the given session ID,
		refreshing its server-side TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - record: *Record

		Returns:
		  - error: Persistence failures
	*/
	Put(context context.Context, sessionID string, record *Record) error

	/*
		Delete removes the record, terminating the session server-side.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Deletion failures (absence is not an error)
	*/
	Delete(context context.Context, sessionID string) error

	// Name identifies the backend ("redis" or "memory") for logs and probes.
	Name() string
}
