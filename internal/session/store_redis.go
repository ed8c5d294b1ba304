// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/constants"
)

// RedisStore implements [Store] on the durable Redis backend.
//
// Records expire server-side after [constants.SessionRecordTTL], shorter
// than the cookie lifetime, so Redis garbage-collects stale sessions while
// the browser keeps presenting the (now dangling) cookie.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Name implements [Store].
func (store *RedisStore) Name() string { return "redis" }

/*
Get retrieves and decodes the record for a session ID.

Description: Returns apperr.NotFound if the record is absent or expired.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Record: Hydrated session state
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisStore) Get(context context.Context, sessionID string) (*Record, error) {

	key := constants.RedisPrefixSession + sessionID

	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return decode(payload)
}

/*
Put encodes and stores the record, resetting its TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - record: *Record

Returns:
  - error: Encoding or persistence failures
*/
func (store *RedisStore) Put(context context.Context, sessionID string, record *Record) error {

	key := constants.RedisPrefixSession + sessionID

	payload, err := encode(record)
	if err != nil {
		return err
	}

	if err := store.client.Set(context, key, payload, constants.SessionRecordTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_put_failed: %w", err)
	}

	return nil
}

/*
Delete removes the record from Redis.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, sessionID string) error {

	key := constants.RedisPrefixSession + sessionID

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
