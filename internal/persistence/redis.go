package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phoenix-adventures/trip-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
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

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// LimiterStorage adapts the Redis client to fiber's Storage interface so the
// rate limiter survives restarts and is shared across replicas.
type LimiterStorage struct {
	client *redis.Client
}

// NewLimiterStorage builds the adapter.
func (r *Redis) NewLimiterStorage() *LimiterStorage {
	if r == nil {
		return nil
	}
	return &LimiterStorage{client: r.Client}
}

// Get retrieves a value; a missing key returns nil without error.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores a value with an expiration.
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), key, val, exp).Err()
}

// Delete removes a key.
func (s *LimiterStorage) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

// Reset flushes the database backing the limiter.
func (s *LimiterStorage) Reset() error {
	return s.client.FlushDB(context.Background()).Err()
}

// Close is a no-op; the shared client is closed by its owner.
func (s *LimiterStorage) Close() error {
	return nil
}
