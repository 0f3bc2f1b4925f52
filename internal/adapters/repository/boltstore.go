package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/okian/blindcmp/internal/domain/model"
)

var _ Store = (*BoltStore)(nil)

var bucketComparisons = []byte("comparisons")

// Default bolt settings.
const (
	boltFileMode    = 0o600
	boltDirMode     = 0o755
	boltOpenTimeout = 5 * time.Second
)

// BoltStore keeps records in a single bbolt bucket. bbolt runs one write
// transaction at a time, so CompareAndSwap is atomic across goroutines of the
// owning process.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), boltDirMode); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := bolt.Open(path, boltFileMode, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketComparisons)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Load implements Store.
func (s *BoltStore) Load(ctx context.Context, key string) (c model.Comparison, err error) {
	defer func(start time.Time) { observe(BackendBolt, opLoad, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return model.Comparison{}, err
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketComparisons).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		var derr error
		c, derr = decodeRecord(v)
		return derr
	})
	if err != nil {
		return model.Comparison{}, wrapBoltErr(err)
	}
	return c, nil
}

// Save implements Store.
func (s *BoltStore) Save(ctx context.Context, key string, c model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendBolt, opSave, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(c)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketComparisons).Put([]byte(key), data)
	})
	return wrapBoltErr(err)
}

// CompareAndSwap implements Store.
func (s *BoltStore) CompareAndSwap(ctx context.Context, key string, from model.Tag, next model.Comparison) (err error) {
	defer func(start time.Time) { observe(BackendBolt, opCAS, start, err) }(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(next)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketComparisons)
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		cur, err := decodeRecord(v)
		if err != nil {
			return err
		}
		if cur.Tag() != from {
			return ErrConflict
		}
		return b.Put([]byte(key), data)
	})
	return wrapBoltErr(err)
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func wrapBoltErr(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return err
}
