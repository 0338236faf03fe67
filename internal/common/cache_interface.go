package common

import (
	"encoding/json"
	"time"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// GetOrLoadJSON caches the JSON encoding of a loaded value so every cache backend
// hands back the same concrete type. The bool reports a cache hit.
func GetOrLoadJSON[T any](c CacheInterface, key string, ttl time.Duration, load func() (T, error)) (T, bool, error) {
	if raw, found := c.Get(key); found {
		if encoded, ok := raw.(string); ok {
			var cached T
			if err := json.Unmarshal([]byte(encoded), &cached); err == nil {
				return cached, true, nil
			}
		}
		// Unreadable entry, reload it
		c.Delete(key)
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, false, err
	}

	if data, err := json.Marshal(value); err == nil {
		c.Set(key, string(data), ttl)
	}
	return value, false, nil
}
