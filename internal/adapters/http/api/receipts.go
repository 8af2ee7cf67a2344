// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/tally/internal/domain/receipt"
)

// ReceiptDependencies defines the interface for receipt processing.
type ReceiptDependencies interface {
	ProcessReceipt(ctx context.Context, r *receipt.Receipt) (string, error)
}

// ReceiptsHandler handles receipt submission requests.
type ReceiptsHandler struct {
	deps ReceiptDependencies
}

// NewReceiptsHandler creates a new receipts handler.
func NewReceiptsHandler(deps ReceiptDependencies) *ReceiptsHandler {
	return &ReceiptsHandler{deps: deps}
}

// HandleProcessReceipt handles POST /receipts/process requests.
func (h *ReceiptsHandler) HandleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	const op = "api.process_receipt"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req receipt.Receipt
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id, err := h.deps.ProcessReceipt(r.Context(), &req)
	if err != nil {
		if isInvalidReceipt(err) {
			writeError(w, http.StatusBadRequest, "invalid_receipt", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, processResponse{ID: id})
}
