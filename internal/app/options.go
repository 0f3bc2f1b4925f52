package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/blindcmp/internal/adapters/repository"
	"github.com/okian/blindcmp/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store. Without it Start opens an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBackendName sets the backend name reported in stats.
func WithBackendName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.backend = name
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides identifier minting. Generated identifiers must be
// unique; a collision would overwrite an existing comparison.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithSubmitAttempts bounds how often Submit re-reads a record after a
// conditional write conflict.
func WithSubmitAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.submitAttempts = n
		}
	}
}

func defaultID() string { return uuid.NewString() }
