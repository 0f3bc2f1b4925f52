package repository

import (
	"errors"
	"time"

	"github.com/okian/blindcmp/pkg/metrics"
)

// Store operation names used as metric labels.
const (
	opLoad = "load"
	opSave = "save"
	opCAS  = "cas"
)

// observe records latency for one store operation and counts failures.
// Not-found and conflict outcomes are part of the contract and are not
// counted as errors.
func observe(backend, op string, start time.Time, err error) {
	metrics.RecordStoreLatency(backend, op, float64(time.Since(start).Microseconds())/1000)
	switch {
	case err == nil, errors.Is(err, ErrNotFound):
	case errors.Is(err, ErrConflict):
		metrics.RecordCASConflict(backend)
	default:
		metrics.RecordStoreError(backend, op)
	}
}
