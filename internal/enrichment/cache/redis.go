package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"unibus/internal/enrichment/ports"
	"unibus/internal/sentinel"

	"github.com/redis/go-redis/v9"
)

const redisPostalKeyPrefix = "unibus:postal:"

// RedisStore persists resolutions in Redis with TTL-based eviction.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("cache.NewRedisStore: redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Find loads a cached resolution. Returns sentinel.ErrNotFound on a miss;
// wraps Redis or decode errors.
func (s *RedisStore) Find(ctx context.Context, code string) (ports.PostalResolution, error) {
	data, err := s.client.Get(ctx, postalKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.PostalResolution{}, sentinel.ErrNotFound
		}
		return ports.PostalResolution{}, fmt.Errorf("find postal cache: %w", err)
	}

	var res ports.PostalResolution
	if err := json.Unmarshal(data, &res); err != nil {
		return ports.PostalResolution{}, fmt.Errorf("decode postal cache: %w", err)
	}
	return res, nil
}

// Save writes a resolution with TTL eviction, overwriting any existing entry.
func (s *RedisStore) Save(ctx context.Context, code string, res ports.PostalResolution) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode postal cache: %w", err)
	}
	if err := s.client.Set(ctx, postalKey(code), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save postal cache: %w", err)
	}
	return nil
}

func postalKey(code string) string {
	return redisPostalKeyPrefix + code
}
