package model

import "errors"

// Sentinel kinds for record state errors.
var (
	ErrAlreadyFinalized  = errors.New("comparison already finalized")
	ErrInvalidTransition = errors.New("invalid comparison transition")
	ErrNoState           = errors.New("comparison has no state")
)
