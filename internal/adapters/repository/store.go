// Package repository defines the comparison store contract and its backends.
package repository

import (
	"context"

	"github.com/okian/blindcmp/internal/domain/model"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// Store persists comparison records under opaque string keys.
//
// Every backend must give read-your-writes per key: a Save or CompareAndSwap
// that returned nil is visible to every later Load of that key.
type Store interface {
	// Load returns the record stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) (model.Comparison, error)

	// Save stores c under key unconditionally.
	Save(ctx context.Context, key string, c model.Comparison) error

	// CompareAndSwap stores next under key only if the stored record's state
	// tag equals from. It returns ErrNotFound when the key is absent and
	// ErrConflict when the tag differs; in both cases nothing is written.
	CompareAndSwap(ctx context.Context, key string, from model.Tag, next model.Comparison) error

	// Close releases the backend.
	Close() error
}
