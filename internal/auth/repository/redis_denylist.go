package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

const deniedTokenKeyPrefix = "trustregistry:denied:jti:"

// RedisDenyList shares revoked token ids between instances. Keys carry the
// token's remaining lifetime as TTL so Redis expires them on its own.
type RedisDenyList struct {
	client *redis.Client
}

// NewRedisDenyList creates a deny-list on top of an existing client.
func NewRedisDenyList(client *redis.Client) *RedisDenyList {
	return &RedisDenyList{client: client}
}

// ConnectRedis parses url, connects and pings the server.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(err, "failed to ping redis")
	}
	return client, nil
}

func (d *RedisDenyList) Deny(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, deniedTokenKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to deny token")
	}
	return nil
}

func (d *RedisDenyList) IsDenied(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	err := d.client.Get(ctx, deniedTokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token deny-list")
	}
	return true, nil
}
