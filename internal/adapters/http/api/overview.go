// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/vendorboard/internal/domain/model"
)

// OverviewDependencies defines the interface for overview reads.
type OverviewDependencies interface {
	Overviews(ctx context.Context) []model.CompanyOverview
}

// OverviewHandler handles company overview requests.
type OverviewHandler struct {
	deps OverviewDependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps OverviewDependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleListOverviews handles GET /api/overview requests. The response
// is the raw overview set; table endpoints serve the formatted view.
func (h *OverviewHandler) HandleListOverviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Overviews(r.Context()))
}
