// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for manual refresh requests.
type RefreshDependencies interface {
	Refresh(ctx context.Context) bool
}

// RefreshHandler handles manual refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /api/refresh requests by enqueuing an
// immediate sweep of all tracked symbols.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !h.deps.Refresh(r.Context()) {
		writeError(w, http.StatusServiceUnavailable, "not_running", ErrNotRunning)
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "queued"})
}
