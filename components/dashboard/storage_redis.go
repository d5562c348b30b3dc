package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists the config snapshot in Redis. Deployments with more
// than one back-office node share one durable config this way.
type RedisStorage struct {
	client redis.UniversalClient
	key    string
}

// RedisStorageOption customizes the storage.
type RedisStorageOption func(*RedisStorage)

// WithRedisKey overrides the storage key (defaults to StorageNamespace).
func WithRedisKey(key string) RedisStorageOption {
	return func(s *RedisStorage) {
		s.key = key
	}
}

// NewRedisStorage wraps a redis client as ConfigStorage.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisStorageOption) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New("dashboard: redis client is required")
	}
	s := &RedisStorage{client: client, key: StorageNamespace}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load fetches and decodes the snapshot. A missing key or corrupt value
// reports ok=false so hydration falls back to the empty default.
func (s *RedisStorage) Load(ctx context.Context) (DashboardConfig, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewDashboardConfig(), false, nil
		}
		return NewDashboardConfig(), false, fmt.Errorf("dashboard: redis get %s: %w", s.key, err)
	}
	return decodeConfig(raw)
}

// Save stores the full snapshot without expiry.
func (s *RedisStorage) Save(ctx context.Context, config DashboardConfig) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("dashboard: encode config: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("dashboard: redis set %s: %w", s.key, err)
	}
	return nil
}
