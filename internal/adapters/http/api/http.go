// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/table"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the vendor snapshots.
	Overviews(ctx context.Context) []model.CompanyOverview
	Income(ctx context.Context, symbol string) (model.IncomeStatement, error)
	Quotes(ctx context.Context, symbol string) ([]model.Bar, error)

	// Table operations expose the formatted dashboard grids.
	OverviewTable(ctx context.Context) table.Table
	VendorTable(ctx context.Context) table.Table

	// Refresh enqueues a fetch sweep. Returns false when the refresh
	// pipeline is not running.
	Refresh(ctx context.Context) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	overviewHandler  *OverviewHandler
	incomeHandler    *IncomeHandler
	quotesHandler    *QuotesHandler
	tableHandler     *TableHandler
	refreshHandler   *RefreshHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		overviewHandler:  NewOverviewHandler(deps),
		incomeHandler:    NewIncomeHandler(deps),
		quotesHandler:    NewQuotesHandler(deps),
		tableHandler:     NewTableHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleListOverviews, "overview"))
	mux.HandleFunc("/api/income", MetricsMiddleware(s.incomeHandler.HandleGetIncome, "income"))
	mux.HandleFunc("/api/quotes", MetricsMiddleware(s.quotesHandler.HandleGetQuotes, "quotes"))
	mux.HandleFunc("/api/table/overview", MetricsMiddleware(s.tableHandler.HandleOverviewTable, "table_overview"))
	mux.HandleFunc("/api/table/vendors", MetricsMiddleware(s.tableHandler.HandleVendorTable, "table_vendors"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
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

// symbolParam extracts and normalizes the required symbol query parameter.
func symbolParam(r *http.Request) (string, error) {
	symbol := model.NormalizeSymbol(r.URL.Query().Get("symbol"))
	if symbol == "" {
		return "", ErrMissingSymbol
	}
	return symbol, nil
}

// isNotFound translates repository misses to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
