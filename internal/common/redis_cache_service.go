package common

import (
	"context"
	"encoding/json"
	"time"

	"airport-booking/skyport/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RedisCacheService implements CacheInterface using Redis
type RedisCacheService struct {
	client *redis.Client
	ctx    context.Context
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService shares the application's Redis client
func NewRedisCacheService(client *redis.Client) *RedisCacheService {
	return &RedisCacheService{
		client: client,
		ctx:    context.Background(),
	}
}

// Set stores a value in Redis with the given key and duration
func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis cache: failed to marshal value", "key", key, "error", err)
		return
	}

	if err := r.client.Set(r.ctx, key, data, duration).Err(); err != nil {
		logging.Warn("Redis cache: failed to set key", "key", key, "error", err)
	}
}

// Get retrieves a value from Redis by key
func (r *RedisCacheService) Get(key string) (interface{}, bool) {
	data, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis cache: failed to get key", "key", key, "error", err)
		return nil, false
	}

	var result interface{}
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logging.Warn("Redis cache: failed to unmarshal value", "key", key, "error", err)
		return nil, false
	}

	return result, true
}

// Delete removes a value from Redis by key
func (r *RedisCacheService) Delete(key string) {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		logging.Warn("Redis cache: failed to delete key", "key", key, "error", err)
	}
}

// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
func (r *RedisCacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	r.Set(key, val, duration)

	return val, nil
}

// Close is a no-op; the shared client is closed by its owner
func (r *RedisCacheService) Close() error {
	return nil
}
