package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/blindcmp/internal/domain/model"
	"github.com/okian/blindcmp/pkg/metrics"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps records in a map. It is the default backend and is only
// shared by the goroutines of one process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.Comparison
	closed  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.Comparison)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, key string) (c model.Comparison, err error) {
	defer func(start time.Time) { observe(BackendMemory, opLoad, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return model.Comparison{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Comparison{}, ErrClosed
	}
	c, ok := s.records[key]
	if !ok {
		return model.Comparison{}, ErrNotFound
	}
	return c, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, key string, c model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendMemory, opSave, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.State == nil {
		return model.ErrNoState
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records[key] = c
	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// CompareAndSwap implements Store. The check and the write happen under one
// write lock.
func (s *MemoryStore) CompareAndSwap(ctx context.Context, key string, from model.Tag, next model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendMemory, opCAS, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}
	if next.State == nil {
		return model.ErrNoState
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	cur, ok := s.records[key]
	if !ok {
		return ErrNotFound
	}
	if cur.Tag() != from {
		return ErrConflict
	}
	s.records[key] = next
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close implements Store. Later calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
