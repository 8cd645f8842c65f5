// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/vendorboard/internal/domain/model"
)

// IncomeDependencies defines the interface for income statement reads.
type IncomeDependencies interface {
	Income(ctx context.Context, symbol string) (model.IncomeStatement, error)
}

// IncomeHandler handles income statement requests.
type IncomeHandler struct {
	deps IncomeDependencies
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(deps IncomeDependencies) *IncomeHandler {
	return &IncomeHandler{deps: deps}
}

// HandleGetIncome handles GET /api/income?symbol=X requests.
func (h *IncomeHandler) HandleGetIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	symbol, err := symbolParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	income, err := h.deps.Income(r.Context(), symbol)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, income)
}
