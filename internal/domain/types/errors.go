package types

import "errors"

// Sentinel kinds for value validation errors.
var (
	ErrInvalidNumber       = errors.New("invalid number")
	ErrInvalidOrderingCode = errors.New("invalid ordering code")
)
