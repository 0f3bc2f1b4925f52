// Package service implements the comparison protocol on top of a record
// store: create, submit, retrieve and inspect.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/blindcmp/internal/adapters/repository"
	"github.com/okian/blindcmp/internal/domain/model"
	"github.com/okian/blindcmp/internal/domain/types"
	"github.com/okian/blindcmp/pkg/logger"
	"github.com/okian/blindcmp/pkg/metrics"
)

const defaultSubmitAttempts = 3

// Rejection reasons used as metric labels.
const (
	reasonInvalidNumber   = "invalid_number"
	reasonNoSuchID        = "no_such_id"
	reasonAlreadyCompared = "already_compared"
	reasonStoreFailure    = "store_failure"
)

// Result is a completed comparison.
type Result struct {
	Name     string
	Ordering types.Ordering
}

// Summary describes a comparison without revealing the initiator's value.
type Summary struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Finalized bool
}

// Service coordinates comparisons. Submit uses a conditional write on the
// state tag, so exactly one of any number of concurrent submissions for an
// identifier is accepted; the rest fail with ErrAlreadyCompared.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	backend string

	now            func() time.Time
	newID          func() string
	submitAttempts int

	started bool
	logger  logger.Logger

	created   atomic.Int64
	finalized atomic.Int64
	rejected  atomic.Int64
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		backend:        repository.BackendMemory,
		now:            time.Now,
		newID:          defaultID,
		submitAttempts: defaultSubmitAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the service. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.backend = repository.BackendMemory
	}

	s.started = true
	s.logger.Info(ctx, "comparison service started",
		logger.String("backend", s.backend),
		logger.Int("submitAttempts", s.submitAttempts),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "comparison service stopped")
}

func (s *Service) storeIfStarted() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Create records a pending comparison and returns its identifier.
func (s *Service) Create(ctx context.Context, name string, value float64) (string, error) {
	const op = "create"

	n, err := types.NewNumber(value)
	if err != nil {
		s.reject(ctx, op, reasonInvalidNumber)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidNumber)
	}
	store, err := s.storeIfStarted()
	if err != nil {
		return "", err
	}

	id := s.newID()
	if err := store.Save(ctx, id, model.NewPending(name, n, s.now().UTC())); err != nil {
		s.logger.Error(ctx, "saving new comparison", logger.String("id", id), logger.Error(err))
		return "", fmt.Errorf("%s: %w: %w", op, ErrStoreWriteFailed, err)
	}

	s.created.Add(1)
	metrics.RecordComparisonCreated()
	s.logger.Debug(ctx, "comparison created", logger.String("id", id), logger.String("name", name))
	return id, nil
}

// Submit supplies the responder's value. The ordering of the initiator's
// value against it replaces the initiator's value in the stored record.
func (s *Service) Submit(ctx context.Context, id string, value float64) error {
	const op = "submit"

	n, err := types.NewNumber(value)
	if err != nil {
		s.reject(ctx, op, reasonInvalidNumber)
		return fmt.Errorf("%s: %w", op, ErrInvalidNumber)
	}
	store, err := s.storeIfStarted()
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		cur, err := s.load(ctx, store, op, id)
		if err != nil {
			if errors.Is(err, ErrNoSuchIdentifier) {
				s.reject(ctx, op, reasonNoSuchID)
			}
			return err
		}

		next, err := cur.Finalize(ctx, n)
		if errors.Is(err, model.ErrAlreadyFinalized) {
			s.reject(ctx, op, reasonAlreadyCompared)
			return fmt.Errorf("%s %s: %w", op, id, ErrAlreadyCompared)
		}
		if err != nil {
			s.logger.Error(ctx, "finalizing stored comparison", logger.String("id", id), logger.Error(err))
			return fmt.Errorf("%s: %w: %w", op, ErrStoreReadFailed, err)
		}
		if attempt > s.submitAttempts {
			s.reject(ctx, op, reasonStoreFailure)
			s.logger.Error(ctx, "submit gave up after repeated write conflicts", logger.String("id", id),
				logger.Int("attempts", s.submitAttempts))
			return fmt.Errorf("%s: %w: %w", op, ErrStoreWriteFailed, repository.ErrConflict)
		}

		err = store.CompareAndSwap(ctx, id, model.TagPending, next)
		switch {
		case err == nil:
			s.finalized.Add(1)
			metrics.RecordComparisonFinalized()
			s.logger.Debug(ctx, "comparison finalized", logger.String("id", id))
			return nil
		case errors.Is(err, repository.ErrConflict):
			// Another submission got there first; the next read decides.
			s.logger.Debug(ctx, "conditional write conflict", logger.String("id", id), logger.Int("attempt", attempt))
		case errors.Is(err, repository.ErrNotFound):
			s.reject(ctx, op, reasonNoSuchID)
			return fmt.Errorf("%s %s: %w", op, id, ErrNoSuchIdentifier)
		default:
			s.reject(ctx, op, reasonStoreFailure)
			s.logger.Error(ctx, "writing finalized comparison", logger.String("id", id), logger.Error(err))
			return fmt.Errorf("%s: %w: %w", op, ErrStoreWriteFailed, err)
		}
	}
}

// Retrieve returns the result of a completed comparison.
func (s *Service) Retrieve(ctx context.Context, id string) (Result, error) {
	const op = "retrieve"

	store, err := s.storeIfStarted()
	if err != nil {
		return Result{}, err
	}
	c, err := s.load(ctx, store, op, id)
	if err != nil {
		return Result{}, err
	}

	switch st := c.State.(type) {
	case model.Finalized:
		metrics.RecordResultRetrieved()
		return Result{Name: c.Name, Ordering: st.Result}, nil
	case model.Pending:
		metrics.RecordResultNotReady()
		return Result{}, fmt.Errorf("%s %s: %w", op, id, ErrNotYetCompared)
	default:
		return Result{}, fmt.Errorf("%s: %w: unexpected state %T", op, ErrStoreReadFailed, c.State)
	}
}

// Inspect reports the name and progress of a comparison.
func (s *Service) Inspect(ctx context.Context, id string) (Summary, error) {
	store, err := s.storeIfStarted()
	if err != nil {
		return Summary{}, err
	}
	c, err := s.load(ctx, store, "inspect", id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		ID:        id,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Finalized: c.IsFinalized(),
	}, nil
}

func (s *Service) load(ctx context.Context, store repository.Store, op, id string) (model.Comparison, error) {
	c, err := store.Load(ctx, id)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, repository.ErrNotFound):
		return model.Comparison{}, fmt.Errorf("%s %s: %w", op, id, ErrNoSuchIdentifier)
	default:
		s.logger.Error(ctx, "loading comparison", logger.String("op", op), logger.String("id", id), logger.Error(err))
		return model.Comparison{}, fmt.Errorf("%s: %w: %w", op, ErrStoreReadFailed, err)
	}
}

func (s *Service) reject(ctx context.Context, op, reason string) {
	s.rejected.Add(1)
	metrics.RecordSubmitRejected(reason)
	if s.logger != nil {
		s.logger.Debug(ctx, "request rejected", logger.String("op", op), logger.String("reason", reason))
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"backend":        s.backend,
		"submitAttempts": s.submitAttempts,
		"created":        s.created.Load(),
		"finalized":      s.finalized.Load(),
		"rejected":       s.rejected.Load(),
	}
	if l, ok := s.store.(interface{ Len() int }); ok && s.started {
		stats["records"] = l.Len()
	}
	return stats
}
