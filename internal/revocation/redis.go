package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "revoked:"

// Redis is a registry backed by a shared Redis instance, for deployments with
// more than one process. Keys expire together with the token they shadow.
type Redis struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, keyPrefix: defaultKeyPrefix, now: time.Now}
}

func (r *Redis) key(jti string) string { return r.keyPrefix + jti }

func (r *Redis) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}
