package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("comparison not found")
	ErrConflict       = errors.New("comparison state changed concurrently")
	ErrCorruptRecord  = errors.New("corrupt comparison record")
	ErrClosed         = errors.New("store closed")
	ErrUnknownBackend = errors.New("unknown store backend")
)
