package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache tracks issued session tokens so that logout can revoke
// a token before its JWT expiry. Key format: session:<token> → role.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache. The TTL should match the
// token TTL so entries expire with the tokens they mirror.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Put records a freshly issued token and the role it was issued for.
func (c *SessionCache) Put(ctx context.Context, token, role string) error {
	return c.client.Set(ctx, c.key(token), role, c.ttl).Err()
}

// Active reports whether the token is still known (not revoked).
func (c *SessionCache) Active(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session lookup: %w", err)
	}
	return n > 0, nil
}

// Revoke removes the token, ending the session server-side.
func (c *SessionCache) Revoke(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *SessionCache) key(token string) string {
	return "session:" + token
}
