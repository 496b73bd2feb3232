package credstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/config"
)

// RedisStore keeps the credential slot in Redis. Meant for shared-host or
// kiosk deployments where the slot must outlive the portal process and its
// filesystem.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis using the provided configuration. A failed
// ping is logged but not fatal; the portal degrades to unauthenticated until
// Redis is reachable.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, key: SlotKey}
}

// Set stores the token under the well-known slot key, without expiry: the
// credential carries its own expiry claim and the resolver enforces it.
func (s *RedisStore) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0).Err()
}

// Get returns the stored token, or "" when the slot is empty.
func (s *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// Clear removes the slot.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}
