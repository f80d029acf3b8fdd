// Package cache holds the Redis-backed identity snapshot store used by
// the auth resolver.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyIdentityPrefix = "auth:identity:"

// Redis-backed store for serialized identity snapshots keyed by the raw
// bearer token
type IdentityStore struct {
	client *redis.Client
}

// creates a new identity store on an existing client
func NewIdentityStore(client *redis.Client) *IdentityStore {
	return &IdentityStore{client: client}
}

// Get returns the snapshot stored for the token. A missing key is a
// plain miss, not an error.
func (s *IdentityStore) Get(ctx context.Context, token string) (string, bool, error) {
	value, err := s.client.Get(ctx, keyIdentityPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("identity cache get: %w", err)
	}

	return value, true, nil
}

// Put stores the snapshot for the token with the given TTL
func (s *IdentityStore) Put(ctx context.Context, token, snapshot string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyIdentityPrefix+token, snapshot, ttl).Err(); err != nil {
		return fmt.Errorf("identity cache put: %w", err)
	}

	return nil
}

// Invalidate drops the snapshot for the token. Deleting an absent key
// is not an error.
func (s *IdentityStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyIdentityPrefix+token).Err(); err != nil {
		return fmt.Errorf("identity cache invalidate: %w", err)
	}

	return nil
}

// closes the underlying redis connection
func (s *IdentityStore) Close() error {
	return s.client.Close()
}
