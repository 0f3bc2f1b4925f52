package client

import (
	"errors"
	"fmt"
)

// Outcome kinds reported by the server, matched by error code.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrNoSuchID        = errors.New("no such comparison")
	ErrAlreadyCompared = errors.New("comparison already completed")
	ErrNotYetCompared  = errors.New("comparison not yet completed")
	ErrServer          = errors.New("server error")
)

var kindsByCode = map[string]error{
	"bad_request":      ErrBadRequest,
	"invalid_number":   ErrInvalidNumber,
	"no_such_id":       ErrNoSuchID,
	"already_compared": ErrAlreadyCompared,
	"not_yet_compared": ErrNotYetCompared,
	"internal_error":   ErrServer,
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is matches the sentinel for the response's error code. Responses without
// a known code match ErrServer for 5xx statuses.
func (e *APIError) Is(target error) bool {
	if kind, ok := kindsByCode[e.Code]; ok {
		return kind == target
	}
	return target == ErrServer && e.StatusCode >= 500
}
