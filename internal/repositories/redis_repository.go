package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps revoked access-token ids until they would have
// expired anyway.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := "blacklist:" + jti
	exists, err := r.rdb.Exists(ctx, key).Result()
	return exists == 1, err
}

func (r *RedisRepository) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := "blacklist:" + jti
	return r.rdb.Set(ctx, key, "true", ttl).Err()
}

// NoopDenylist is used when no Redis server is configured: tokens stay valid
// until they expire.
type NoopDenylist struct{}

func (NoopDenylist) IsBlacklisted(context.Context, string) (bool, error) { return false, nil }

func (NoopDenylist) Blacklist(context.Context, string, time.Duration) error { return nil }
