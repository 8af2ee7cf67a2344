// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/tally/internal/adapters/repository"
	"github.com/okian/tally/internal/domain/receipt"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	// ProcessReceipt scores and stores a receipt, returning its identifier.
	ProcessReceipt(ctx context.Context, r *receipt.Receipt) (string, error)

	// Points returns the stored total for a previously returned identifier.
	Points(ctx context.Context, id string) (int64, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	receiptsHandler *ReceiptsHandler
	pointsHandler   *PointsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		receiptsHandler: NewReceiptsHandler(deps),
		pointsHandler:   NewPointsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. The exact "/receipts/process"
// pattern wins over the "/receipts/" prefix on the points route.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/receipts/process", MetricsMiddleware(s.receiptsHandler.HandleProcessReceipt, "process"))
	mux.HandleFunc("/receipts/", MetricsMiddleware(s.pointsHandler.HandleGetPoints, "points"))
}

// processResponse mirrors the response body for POST /receipts/process.
type processResponse struct {
	ID string `json:"id"`
}

// pointsResponse mirrors the response body for GET /receipts/{id}/points.
type pointsResponse struct {
	Points int64 `json:"points"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// isInvalidReceipt reports whether err is a client-input failure:
// structural validation or unparsable field text.
func isInvalidReceipt(err error) bool {
	return errors.Is(err, receipt.ErrInvalid)
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
