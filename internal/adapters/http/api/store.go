package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/blindcmp/pkg/logger"
)

// StoreDependencies defines the interface for creating comparisons.
type StoreDependencies interface {
	Create(ctx context.Context, name string, value float64) (string, error)
}

// StoreHandler handles comparison creation.
type StoreHandler struct {
	deps StoreDependencies
	log  logger.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(deps StoreDependencies, log logger.Logger) *StoreHandler {
	return &StoreHandler{deps: deps, log: log}
}

// HandleStore handles POST /api/store requests.
func (h *StoreHandler) HandleStore(w http.ResponseWriter, r *http.Request) {
	const op = "api.store"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req storeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	switch {
	case req.Name == nil:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	case req.Value == nil:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing value")))
		return
	}

	id, err := h.deps.Create(r.Context(), *req.Name, req.Value.Float64())
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, storeResponse{ID: id})
}
