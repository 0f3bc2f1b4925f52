package service

import (
	"errors"

	"github.com/okian/blindcmp/internal/domain/types"
)

// Outcome kinds returned by the service. Match them with errors.Is.
var (
	// ErrInvalidNumber is returned when a submitted value is NaN.
	ErrInvalidNumber = types.ErrInvalidNumber

	ErrNoSuchIdentifier = errors.New("no such comparison")
	ErrAlreadyCompared  = errors.New("comparison already completed")
	ErrNotYetCompared   = errors.New("comparison not yet completed")

	// Store failures. The wrapped cause is for logs, not for callers.
	ErrStoreReadFailed  = errors.New("store read failed")
	ErrStoreWriteFailed = errors.New("store write failed")

	ErrNotStarted = errors.New("service not started")
)
