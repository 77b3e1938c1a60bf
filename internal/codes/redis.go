package codes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	models "github.com/tayotravel/tourbook/internal"
)

const redisKeyPrefix = "verification-code:"

// RedisStore keeps verification codes in Redis with native TTL expiry,
// so they survive restarts and are shared across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, code models.VerificationCode, ttl time.Duration) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.VerificationCode, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var code models.VerificationCode
	if err := json.Unmarshal(payload, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
