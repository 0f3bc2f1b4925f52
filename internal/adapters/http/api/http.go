// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	service "github.com/okian/blindcmp/internal/app"
	"github.com/okian/blindcmp/internal/domain/types"
	"github.com/okian/blindcmp/pkg/logger"
)

// maxBodyBytes bounds request bodies; every request is a small JSON object.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StoreDependencies
	CompareDependencies
	ResultDependencies
	StatusDependencies
}

// Server wires HTTP routes for the comparison API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	storeHandler   *StoreHandler
	compareHandler *CompareHandler
	resultHandler  *ResultHandler
	statusHandler  *StatusHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		storeHandler:   NewStoreHandler(deps, log),
		compareHandler: NewCompareHandler(deps, log),
		resultHandler:  NewResultHandler(deps, log),
		statusHandler:  NewStatusHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/store", MetricsMiddleware(s.storeHandler.HandleStore, "store"))
	mux.HandleFunc("/api/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/api/result", MetricsMiddleware(s.resultHandler.HandleResult, "result"))
	mux.HandleFunc("/api/status/", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
}

// Request and response shapes. Pointers mark required fields so a missing
// field is told apart from a zero value.

type storeRequest struct {
	Name  *string       `json:"name"`
	Value *types.Number `json:"value"`
}

type storeResponse struct {
	ID string `json:"id"`
}

type compareRequest struct {
	ID    string        `json:"id"`
	Value *types.Number `json:"value"`
}

type compareResponse struct {
	OK *struct{} `json:"ok"`
}

type resultRequest struct {
	ID string `json:"id"`
}

type resultResponse struct {
	Name   string         `json:"name"`
	Result types.Ordering `json:"result"`
}

type statusResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Finalized bool      `json:"finalized"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service outcomes to status codes. Store failures
// are logged and reported without their cause.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidNumber):
		writeError(w, http.StatusBadRequest, "invalid_number", WrapKind(op, ErrBadRequest, service.ErrInvalidNumber))
	case errors.Is(err, service.ErrNoSuchIdentifier):
		writeError(w, http.StatusNotFound, "no_such_id", NewKind(op, service.ErrNoSuchIdentifier))
	case errors.Is(err, service.ErrAlreadyCompared):
		writeError(w, http.StatusConflict, "already_compared", NewKind(op, service.ErrAlreadyCompared))
	case errors.Is(err, service.ErrNotYetCompared):
		writeError(w, http.StatusConflict, "not_yet_compared", NewKind(op, service.ErrNotYetCompared))
	default:
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}
