package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/blindcmp/internal/app"
	"github.com/okian/blindcmp/pkg/logger"
)

// ResultDependencies defines the interface for reading completed comparisons.
type ResultDependencies interface {
	Retrieve(ctx context.Context, id string) (service.Result, error)
}

// ResultHandler handles result lookups.
type ResultHandler struct {
	deps ResultDependencies
	log  logger.Logger
}

// NewResultHandler creates a new result handler.
func NewResultHandler(deps ResultDependencies, log logger.Logger) *ResultHandler {
	return &ResultHandler{deps: deps, log: log}
}

// HandleResult handles POST /api/result requests.
func (h *ResultHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	const op = "api.result"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resultRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}

	res, err := h.deps.Retrieve(r.Context(), req.ID)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Name: res.Name, Result: res.Ordering})
}
