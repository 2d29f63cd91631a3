package nutrition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "nutrition:lookup:"

// CachedProvider memoizes successful lookups in Redis. Cache failures are
// logged and bypassed; errors from the wrapped provider are never stored.
type CachedProvider struct {
	next  Provider
	redis redis.Cmdable
	ttl   time.Duration
}

// NewCachedProvider wraps next with a Redis cache whose entries live for ttl
func NewCachedProvider(next Provider, client redis.Cmdable, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		redis: client,
		ttl:   ttl,
	}
}

// CacheKey returns the Redis key used for query
func CacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Lookup serves query from Redis when present, otherwise from the wrapped provider
func (p *CachedProvider) Lookup(ctx context.Context, query string) ([]Food, error) {
	if err := checkQuery(query); err != nil {
		return nil, err
	}

	key := CacheKey(query)
	data, err := p.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var foods []Food
		if jsonErr := json.Unmarshal(data, &foods); jsonErr == nil {
			slog.DebugContext(ctx, "nutrition cache hit", "query", query)
			return foods, nil
		}
		slog.WarnContext(ctx, "discarding unreadable nutrition cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "nutrition cache read failed", "error", err)
	}

	foods, err := p.next.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(foods)
	if err != nil {
		slog.WarnContext(ctx, "failed to marshal nutrition cache entry", "error", err)
		return foods, nil
	}
	if err := p.redis.Set(ctx, key, data, p.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "nutrition cache write failed", "error", err)
	}

	return foods, nil
}
