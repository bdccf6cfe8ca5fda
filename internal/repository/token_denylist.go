package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist tracks refresh token ids revoked by rotation. Tokens are
// otherwise stateless; this is the one piece of server-side token state, and
// entries expire with the token they shadow.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistKeyPrefix = "auth:denylist:"

type redisTokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist returns a Redis-backed implementation.
func NewTokenDenylist(client *redis.Client) TokenDenylist {
	return &redisTokenDenylist{client: client}
}

func (d *redisTokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// already past expiry, nothing to shadow
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err()
}

func (d *redisTokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+jti).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// noopTokenDenylist accepts every token. Used when Redis is not configured;
// rotation then falls back to TTL as the sole mitigation.
type noopTokenDenylist struct{}

// NewNoopTokenDenylist returns the pass-through implementation.
func NewNoopTokenDenylist() TokenDenylist {
	return noopTokenDenylist{}
}

func (noopTokenDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopTokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
