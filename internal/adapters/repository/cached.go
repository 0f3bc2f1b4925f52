package repository

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/okian/blindcmp/internal/domain/model"
	"github.com/okian/blindcmp/pkg/metrics"
)

var _ Store = (*CachedStore)(nil)

// CachedStore serves finalized records from an ARC cache in front of another
// store. Finalized records never change, so a cached entry is never stale.
// Pending records are always read from the backing store.
type CachedStore struct {
	next  Store
	cache *lru.ARCCache
}

// NewCachedStore wraps next with a cache holding up to size finalized records.
func NewCachedStore(next Store, size int) (*CachedStore, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

// Load implements Store.
func (s *CachedStore) Load(ctx context.Context, key string) (model.Comparison, error) {
	if v, ok := s.cache.Get(key); ok {
		metrics.RecordCacheHit()
		return v.(model.Comparison), nil
	}
	metrics.RecordCacheMiss()

	c, err := s.next.Load(ctx, key)
	if err != nil {
		return model.Comparison{}, err
	}
	s.remember(key, c)
	return c, nil
}

// Save implements Store.
func (s *CachedStore) Save(ctx context.Context, key string, c model.Comparison) error {
	s.cache.Remove(key)
	if err := s.next.Save(ctx, key, c); err != nil {
		return err
	}
	s.remember(key, c)
	return nil
}

// CompareAndSwap implements Store.
func (s *CachedStore) CompareAndSwap(ctx context.Context, key string, from model.Tag, next model.Comparison) error {
	if err := s.next.CompareAndSwap(ctx, key, from, next); err != nil {
		return err
	}
	s.remember(key, next)
	return nil
}

// Len returns the number of cached records.
func (s *CachedStore) Len() int { return s.cache.Len() }

// Close purges the cache and closes the backing store.
func (s *CachedStore) Close() error {
	s.cache.Purge()
	return s.next.Close()
}

func (s *CachedStore) remember(key string, c model.Comparison) {
	if c.IsFinalized() {
		s.cache.Add(key, c)
	}
}
