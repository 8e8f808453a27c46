package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// TokenCache is a read-through cache in front of a TokenStore. Resolutions
// hit Redis first and fall back to the inner store; both directions of the
// mapping are cached so Revoke can purge eagerly.
//
// Keys: authtoken:<token> → userID and usertoken:<userID> → token.
//
// Cache failures are never fatal: every operation degrades to the inner
// store. The TTL bounds staleness in the one case Revoke cannot purge (a
// usertoken entry that expired while its authtoken entry survived).
type TokenCache struct {
	client *redis.Client
	inner  ports.TokenStore
	ttl    time.Duration
}

// NewTokenCache wraps inner with a Redis cache. A non-positive TTL falls
// back to defaultCacheTTL.
func NewTokenCache(client *redis.Client, inner ports.TokenStore, ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TokenCache{client: client, inner: inner, ttl: ttl}
}

func (c *TokenCache) IssueOrGet(ctx context.Context, userID string) (string, error) {
	token, err := c.inner.IssueOrGet(ctx, userID)
	if err != nil {
		return "", err
	}
	c.put(ctx, token, userID)
	return token, nil
}

func (c *TokenCache) Resolve(ctx context.Context, token string) (string, error) {
	if token != "" {
		// A redis.Nil miss and a transport error both degrade to the store.
		if userID, err := c.client.Get(ctx, tokenKey(token)).Result(); err == nil {
			metrics.TokenResolutionsTotal.WithLabelValues("cache_hit").Inc()
			return userID, nil
		}
	}

	userID, err := c.inner.Resolve(ctx, token)
	if err != nil {
		metrics.TokenResolutionsTotal.WithLabelValues("miss").Inc()
		return "", err
	}

	metrics.TokenResolutionsTotal.WithLabelValues("store_hit").Inc()
	c.put(ctx, token, userID)
	return userID, nil
}

func (c *TokenCache) Revoke(ctx context.Context, userID string) error {
	// Purge before deleting from the store so a revoked token cannot be
	// served from cache afterwards.
	if token, err := c.client.Get(ctx, userKey(userID)).Result(); err == nil {
		_ = c.client.Del(ctx, tokenKey(token), userKey(userID)).Err()
	} else {
		_ = c.client.Del(ctx, userKey(userID)).Err()
	}
	return c.inner.Revoke(ctx, userID)
}

// put caches both directions of the mapping, best effort.
func (c *TokenCache) put(ctx context.Context, token, userID string) {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, tokenKey(token), userID, c.ttl)
	pipe.Set(ctx, userKey(userID), token, c.ttl)
	_, _ = pipe.Exec(ctx)
}

func tokenKey(token string) string {
	return "authtoken:" + token
}

func userKey(userID string) string {
	return "usertoken:" + userID
}
