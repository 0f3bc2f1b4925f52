package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/okian/blindcmp/internal/domain/model"
)

var _ Store = (*RedisStore)(nil)

const defaultMaxTxRetries = 5

// RedisStore keeps one string key per record. CompareAndSwap uses WATCH and
// MULTI/EXEC, so it is atomic across every process sharing the server.
type RedisStore struct {
	client       redis.UniversalClient
	prefix       string
	maxTxRetries int
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:       client,
		maxTxRetries: defaultMaxTxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, key string) (c model.Comparison, err error) {
	defer func(start time.Time) { observe(BackendRedis, opLoad, start, err) }(time.Now())

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Comparison{}, ErrNotFound
	}
	if err != nil {
		return model.Comparison{}, err
	}
	return decodeRecord(data)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, key string, c model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendRedis, opSave, start, err) }(time.Now())

	data, err := encodeRecord(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), data, 0).Err()
}

// CompareAndSwap implements Store.
func (s *RedisStore) CompareAndSwap(ctx context.Context, key string, from model.Tag, next model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendRedis, opCAS, start, err) }(time.Now())

	data, err := encodeRecord(next)
	if err != nil {
		return err
	}
	k := s.key(key)

	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		rec, err := decodeRecord(cur)
		if err != nil {
			return err
		}
		if rec.Tag() != from {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < s.maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			// The key changed between WATCH and EXEC; re-read it.
			continue
		}
		return err
	}
	return ErrConflict
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
