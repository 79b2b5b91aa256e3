// Package cache holds the Redis-backed cache of public conference
// representations. Only the reduced view is cached: the full view
// depends on the caller's membership and must always be computed.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConferenceCache stores rendered reduced representations keyed by
// conference id. A nil client disables the cache; every method then
// degrades to a no-op so callers need no availability checks.
type ConferenceCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ConferenceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ConferenceCache{RDB: rdb, TTL: ttl}
}

func key(conferenceID string) string { return "conf:reduced:" + conferenceID }

// GetReduced returns the cached JSON body for a conference, if present.
func (c *ConferenceCache) GetReduced(ctx context.Context, conferenceID string) ([]byte, bool) {
	if c == nil || c.RDB == nil {
		return nil, false
	}
	body, err := c.RDB.Get(ctx, key(conferenceID)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// SetReduced stores the rendered reduced representation. Failures are
// ignored; the cache is best-effort.
func (c *ConferenceCache) SetReduced(ctx context.Context, conferenceID string, body []byte) {
	if c == nil || c.RDB == nil {
		return
	}
	_ = c.RDB.Set(ctx, key(conferenceID), body, c.TTL).Err()
}

// Invalidate drops the cached view after any mutation of the conference
// or one of its child resources.
func (c *ConferenceCache) Invalidate(ctx context.Context, conferenceID string) {
	if c == nil || c.RDB == nil {
		return
	}
	_ = c.RDB.Del(ctx, key(conferenceID)).Err()
}
