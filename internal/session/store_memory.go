// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/constants"
)

// memoryCleanupInterval is how often expired records are swept from memory.
const memoryCleanupInterval = 10 * time.Minute

// MemoryStore implements [Store] as a non-persistent, process-local fallback.
//
// Sessions held here do not survive a process restart. The selector logs the
// degradation prominently whenever this store is serving; nothing in this
// type is a substitute for the durable backend.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an ephemeral in-process session [Store] with the
// same record TTL semantics as the durable backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(constants.SessionRecordTTL, memoryCleanupInterval),
	}
}

// Name implements [Store].
func (store *MemoryStore) Name() string { return "memory" }

/*
Get retrieves the record for a session ID.

Description: Records are stored serialized, mirroring the durable backend,
so callers never share mutable state through the cache.

Parameters:
  - context: context.Context (unused; kept for contract symmetry)
  - sessionID: string

Returns:
  - *Record: Hydrated session state
  - error: apperr.NotFound when absent or expired
*/
func (store *MemoryStore) Get(_ context.Context, sessionID string) (*Record, error) {
	payload, found := store.cache.Get(sessionID)
	if !found {
		return nil, apperr.NotFound("Session")
	}
	return decode(payload.([]byte))
}

/*
Put stores the record, resetting its TTL.

Parameters:
  - context: context.Context (unused)
  - sessionID: string
  - record: *Record

Returns:
  - error: Encoding failures
*/
func (store *MemoryStore) Put(_ context.Context, sessionID string, record *Record) error {
	payload, err := encode(record)
	if err != nil {
		return err
	}
	store.cache.SetDefault(sessionID, payload)
	return nil
}

/*
Delete removes the record.

Parameters:
  - context: context.Context (unused)
  - sessionID: string

Returns:
  - error: always nil (absence is not an error)
*/
func (store *MemoryStore) Delete(_ context.Context, sessionID string) error {
	store.cache.Delete(sessionID)
	return nil
}
