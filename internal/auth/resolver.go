package auth

import (
	"context"
	"encoding/json"
	"time"

	"codeberg.org/rolodex/server/internal/logger"
	"codeberg.org/rolodex/server/rolodex/users"
)

// how long a resolved identity snapshot stays cached. A role or profile
// change on a still-valid token is not observed until this expires, an
// accepted staleness window bounded by the TTL.
const identityCacheTTL = time.Hour

// Resolver turns a bearer token into the authenticated identity. The
// cache is a performance shortcut only; resolution stays correct with a
// nil cache or a failing cache backend.
type Resolver struct {
	codec     *TokenCodec
	cache     TokenCache
	directory UserDirectory
}

// creates a resolver; cache may be nil to disable snapshot caching
func NewResolver(codec *TokenCodec, cache TokenCache, directory UserDirectory) *Resolver {
	return &Resolver{
		codec:     codec,
		cache:     cache,
		directory: directory,
	}
}

// Resolve returns the identity behind the token. Every failure collapses
// into ErrUnauthorized so callers cannot tell which check rejected it.
func (r *Resolver) Resolve(ctx context.Context, token string) (*users.User, error) {
	if user, ok := r.fromCache(ctx, token); ok {
		return user, nil
	}

	claims, err := r.codec.Decode(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.Name == "" {
		return nil, ErrUnauthorized
	}

	user, err := r.directory.FindByName(ctx, claims.Name)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	r.populateCache(ctx, token, user)

	return user, nil
}

// checks the cache for a snapshot of this token's identity
func (r *Resolver) fromCache(ctx context.Context, token string) (*users.User, bool) {
	if r.cache == nil {
		return nil, false
	}

	snapshot, ok, err := r.cache.Get(ctx, token)
	if err != nil {
		// cache trouble must never fail the request
		logger.ErrorErr(err, "identity cache lookup failed")
		return nil, false
	}

	if !ok {
		return nil, false
	}

	var user users.User
	if err := json.Unmarshal([]byte(snapshot), &user); err != nil {
		logger.Warn("discarding undecodable identity cache entry")
		return nil, false
	}

	return &user, true
}

// stores a snapshot of the resolved identity under the raw token.
// Concurrent populates for the same token are harmless overwrites.
func (r *Resolver) populateCache(ctx context.Context, token string, user *users.User) {
	if r.cache == nil {
		return
	}

	snapshot, err := json.Marshal(user)
	if err != nil {
		logger.ErrorErr(err, "failed to serialize identity snapshot")
		return
	}

	if err := r.cache.Put(ctx, token, string(snapshot), identityCacheTTL); err != nil {
		logger.ErrorErr(err, "identity cache populate failed")
	}
}
