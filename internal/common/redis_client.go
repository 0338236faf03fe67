package common

import (
	"context"
	"fmt"
	"time"

	"airport-booking/skyport/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies the connection with a ping
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	logging.Info("Initializing Redis client", "addr", addr, "db", db)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", addr, err)
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client, nil
}
