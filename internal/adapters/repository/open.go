package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Config selects and configures a backend for Open.
type Config struct {
	Backend        string
	BoltPath       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	// RedisTxRetries <= 0 keeps the RedisStore default.
	RedisTxRetries int
	// CacheSize > 0 puts a CachedStore of that many entries in front.
	CacheSize int
}

// Open builds the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", BackendMemory:
		s = NewMemoryStore()
	case BackendBolt:
		s, err = NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
	case BackendRedis:
		rs := NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), WithKeyPrefix(cfg.RedisKeyPrefix), WithMaxTxRetries(cfg.RedisTxRetries))
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		s = rs
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.CacheSize > 0 {
		cached, err := NewCachedStore(s, cfg.CacheSize)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		return cached, nil
	}
	return s, nil
}
