// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/vendorboard/internal/domain/table"
)

// TableDependencies defines the interface for formatted grid reads.
type TableDependencies interface {
	OverviewTable(ctx context.Context) table.Table
	VendorTable(ctx context.Context) table.Table
}

// TableHandler handles dashboard grid requests.
type TableHandler struct {
	deps TableDependencies
}

// NewTableHandler creates a new table handler.
func NewTableHandler(deps TableDependencies) *TableHandler {
	return &TableHandler{deps: deps}
}

// HandleOverviewTable handles GET /api/table/overview requests. Cells
// arrive already run through their column formatting hooks.
func (h *TableHandler) HandleOverviewTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.OverviewTable(r.Context()))
}

// HandleVendorTable handles GET /api/table/vendors requests.
func (h *TableHandler) HandleVendorTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.VendorTable(r.Context()))
}
