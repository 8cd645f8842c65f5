// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/vendorboard/internal/domain/model"
)

// QuotesDependencies defines the interface for intraday quote reads.
type QuotesDependencies interface {
	Quotes(ctx context.Context, symbol string) ([]model.Bar, error)
}

// QuotesHandler handles intraday quote requests.
type QuotesHandler struct {
	deps QuotesDependencies
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(deps QuotesDependencies) *QuotesHandler {
	return &QuotesHandler{deps: deps}
}

// HandleGetQuotes handles GET /api/quotes?symbol=X requests. Bars are
// returned newest first.
func (h *QuotesHandler) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	symbol, err := symbolParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	bars, err := h.deps.Quotes(r.Context(), symbol)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, bars)
}
