package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/blindcmp/pkg/logger"
)

// CompareDependencies defines the interface for submitting the second value.
type CompareDependencies interface {
	Submit(ctx context.Context, id string, value float64) error
}

// CompareHandler handles responder submissions.
type CompareHandler struct {
	deps CompareDependencies
	log  logger.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies, log logger.Logger) *CompareHandler {
	return &CompareHandler{deps: deps, log: log}
}

// HandleCompare handles POST /api/compare requests.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req compareRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	switch {
	case strings.TrimSpace(req.ID) == "":
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	case req.Value == nil:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing value")))
		return
	}

	if err := h.deps.Submit(r.Context(), req.ID, req.Value.Float64()); err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{})
}
