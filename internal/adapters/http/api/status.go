package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/blindcmp/internal/app"
	"github.com/okian/blindcmp/pkg/logger"
)

// StatusDependencies defines the interface for inspecting a comparison.
type StatusDependencies interface {
	Inspect(ctx context.Context, id string) (service.Summary, error)
}

// StatusHandler reports whether a comparison is still open.
type StatusHandler struct {
	deps StatusDependencies
	log  logger.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps StatusDependencies, log logger.Logger) *StatusHandler {
	return &StatusHandler{deps: deps, log: log}
}

// HandleStatus handles GET /api/status/{id} requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.status"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/status/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	sum, err := h.deps.Inspect(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		ID:        sum.ID,
		Name:      sum.Name,
		CreatedAt: sum.CreatedAt,
		Finalized: sum.Finalized,
	})
}
