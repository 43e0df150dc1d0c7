// internal/auth/cache.go
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// CachingResolver wraps an IdentityResolver with a short-TTL redis cache so
// repeated requests carrying the same credential skip verification. Only the
// identity lookup is cached; settlement-relevant account state never is.
type CachingResolver struct {
	next   IdentityResolver
	client *redis.Client
	ttl    time.Duration
}

// NewCachingResolver creates a caching decorator around next.
func NewCachingResolver(next IdentityResolver, client *redis.Client, ttl time.Duration) *CachingResolver {
	return &CachingResolver{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient connects and pings a redis instance for the identity cache.
func NewRedisClient(addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Username:    username,
		Password:    password,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// Resolve serves the identity from cache when present, falling back to the
// wrapped resolver on a miss or a redis fault. Cache write failures are
// swallowed: the cache is an optimization, not a source of truth.
func (c *CachingResolver) Resolve(ctx context.Context, credential string) (string, error) {
	key := cacheKey(credential)

	userID, err := c.client.Get(ctx, key).Result()
	if err == nil && userID != "" {
		return userID, nil
	}

	userID, err = c.next.Resolve(ctx, credential)
	if err != nil {
		return "", err
	}

	_ = c.client.Set(ctx, key, userID, c.ttl).Err()
	return userID, nil
}

// cacheKey hashes the credential so raw tokens are never stored in redis.
func cacheKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return "auth:" + hex.EncodeToString(sum[:])
}
