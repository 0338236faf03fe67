// Package config loads runtime settings from the environment, reading a .env file first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	devJWTSecret = "skyport-dev-secret"
)

// Config holds every setting the server and its background workers need
type Config struct {
	AppEnv string
	Port   string

	// PostgresDSN is used when set, otherwise the server falls back to SQLitePath
	PostgresDSN string
	SQLitePath  string
	AutoMigrate bool

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	// RedisAddr enables the shared cache and the order event stream
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string

	SeatInventoryInterval time.Duration
	OrderEventWorkers     int
}

// Load reads .env (if any) and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:                envStr("APP_ENV", EnvDevelopment),
		Port:                  envStr("PORT", "8080"),
		PostgresDSN:           postgresDSN(),
		SQLitePath:            envStr("SQLITE_PATH", "skyport.db"),
		AutoMigrate:           envBool("AUTO_MIGRATE", true),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		JWTTTL:                envDur("JWT_TTL", 24*time.Hour),
		BcryptCost:            envInt("BCRYPT_COST", 10),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               envInt("REDIS_DB", 0),
		CacheTTL:              envDur("CACHE_TTL", 5*time.Minute),
		RateLimitRPS:          envFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:        envInt("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins:    envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SeatInventoryInterval: envDur("SEAT_INVENTORY_INTERVAL", time.Minute),
		OrderEventWorkers:     envInt("ORDER_EVENT_WORKERS", 2),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.AppEnv)
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	if cfg.OrderEventWorkers < 0 {
		cfg.OrderEventWorkers = 0
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// UsesPostgres reports whether a Postgres DSN was configured
func (c *Config) UsesPostgres() bool {
	return c.PostgresDSN != ""
}

// UsesRedis reports whether Redis was configured
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// postgresDSN prefers PG_DSN and otherwise assembles one from the PG_* parts
func postgresDSN() string {
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		return dsn
	}
	host := os.Getenv("PG_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		host,
		envStr("PG_PORT", "5432"),
		os.Getenv("PG_DB"),
		envStr("PG_SSLMODE", "disable"),
	)
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}

func envFloat(k string, d float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
		return f
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return dur
	}
	return d
}

func envList(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return d
	}
	return out
}
