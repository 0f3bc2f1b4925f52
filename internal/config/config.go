// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Store backend names accepted in StoreBackend.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects where comparisons are kept: memory, bolt or redis.
	StoreBackend string `koanf:"store_backend"`

	// BoltPath is the database file for the bolt backend.
	BoltPath string `koanf:"bolt_path"`

	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`

	// RedisTxRetries bounds how often a conditional write re-runs a redis
	// transaction aborted by a concurrent write.
	RedisTxRetries int `koanf:"redis_tx_retries"`

	// ResultCacheSize is the number of finalized comparisons cached in
	// memory. Zero disables the cache.
	ResultCacheSize int `koanf:"result_cache_size"`

	// SubmitAttempts bounds conditional write attempts per submission.
	SubmitAttempts int `koanf:"submit_attempts"`

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows all.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New returns a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8000",
		StoreBackend:       BackendMemory,
		BoltPath:           "data/blindcmp.db",
		RedisAddr:          "localhost:6379",
		RedisKeyPrefix:     "blindcmp:",
		RedisTxRetries:     5,
		ResultCacheSize:    10_000,
		SubmitAttempts:     3,
		CORSAllowedOrigins: []string{"*"},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SubmitAttempts < 1:
		return fmt.Errorf("%w: submit_attempts must be at least 1", ErrInvalidConfig)
	case c.ResultCacheSize < 0:
		return fmt.Errorf("%w: result_cache_size must not be negative", ErrInvalidConfig)
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendBolt:
		if strings.TrimSpace(c.BoltPath) == "" {
			return fmt.Errorf("%w: bolt_path is required for the bolt backend", ErrInvalidConfig)
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalidConfig)
		}
		if c.RedisTxRetries < 1 {
			return fmt.Errorf("%w: redis_tx_retries must be at least 1", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
