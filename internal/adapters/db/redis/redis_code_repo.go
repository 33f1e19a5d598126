package redis

import (
	"context"
	"time"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/redis/go-redis/v9"
)

// deleteIfMatch removes the key only while it still holds the submitted
// code, so a code can be consumed at most once even under racing confirms.
var deleteIfMatch = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisCodeRepo struct {
	client *redis.Client
}

func NewRedisCodeRepo(client *redis.Client) *RedisCodeRepo {
	return &RedisCodeRepo{
		client: client,
	}
}

func (r *RedisCodeRepo) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return apperrors.WrapInternal(err, "Set")
	}
	return nil
}

func (r *RedisCodeRepo) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		return "", apperrors.ErrCodeInvalidOrExpired
	case err != nil:
		return "", apperrors.WrapInternal(err, "Get")
	default:
		return val, nil
	}
}

func (r *RedisCodeRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return apperrors.WrapInternal(err, "Delete")
	}
	return nil
}

func (r *RedisCodeRepo) DeleteIfMatch(ctx context.Context, key, code string) (bool, error) {
	n, err := deleteIfMatch.Run(ctx, r.client, []string{key}, code).Int()
	if err != nil {
		return false, apperrors.WrapInternal(err, "DeleteIfMatch")
	}
	return n == 1, nil
}
