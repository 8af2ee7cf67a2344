// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
)

// PointsDependencies defines the interface for points lookups.
type PointsDependencies interface {
	Points(ctx context.Context, id string) (int64, error)
}

// PointsHandler handles points lookup requests.
type PointsHandler struct {
	deps PointsDependencies
}

// NewPointsHandler creates a new points handler.
func NewPointsHandler(deps PointsDependencies) *PointsHandler {
	return &PointsHandler{deps: deps}
}

// HandleGetPoints handles GET /receipts/{id}/points requests.
func (h *PointsHandler) HandleGetPoints(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_points"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract the path parameter between /receipts/ and /points.
	path := strings.TrimPrefix(r.URL.Path, "/receipts/")
	id, ok := strings.CutSuffix(path, "/points")
	if !ok || id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	pts, err := h.deps.Points(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pointsResponse{Points: pts})
}
