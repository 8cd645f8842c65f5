// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/vendorboard/internal/adapters/cache"
	"github.com/okian/vendorboard/internal/adapters/provider"
	"github.com/okian/vendorboard/internal/adapters/refresh"
	"github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/table"
	"github.com/okian/vendorboard/pkg/logger"
)

// Default service configuration.
const (
	defaultCachePath       = "/tmp/vendorboard/cache.db"
	defaultCacheTTL        = 24 * time.Hour
	defaultRefreshInterval = time.Hour
	defaultQueueSize       = 64
)

// Service owns the refresh pipeline and serves all dashboard reads.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	cache     *cache.Cache
	client    *provider.Client
	queue     refresh.Queue
	pool      *refresh.WorkerPool
	scheduler *refresh.Scheduler

	// Configuration
	symbols         []string
	apiKey          string
	baseURL         string
	cachePath       string
	cacheTTL        time.Duration
	refreshInterval time.Duration
	requestTimeout  time.Duration
	maxRetries      int
	ratePerMinute   int
	workerCount     int
	queueSize       int

	// State
	started         bool
	schedulerCancel context.CancelFunc

	// Logging
	log logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		symbols:         []string{"TEL", "ST", "DD", "CE", "LYB"},
		baseURL:         "https://www.alphavantage.co/query",
		cachePath:       defaultCachePath,
		cacheTTL:        defaultCacheTTL,
		refreshInterval: defaultRefreshInterval,
		workerCount:     min(runtime.NumCPU(), 4),
		queueSize:       defaultQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	s.log.Info(ctx, "starting vendorboard service...")

	store, err := cache.Open(ctx, s.cachePath, cache.WithDefaultTTL(s.cacheTTL))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	s.cache = store

	providerOpts := []provider.Option{
		provider.WithCache(s.cache),
		provider.WithLogger(s.log.Named("provider")),
	}
	if s.maxRetries > 0 {
		providerOpts = append(providerOpts, provider.WithMaxRetries(s.maxRetries))
	}
	if s.ratePerMinute > 0 {
		providerOpts = append(providerOpts, provider.WithRatePerMinute(s.ratePerMinute))
	}
	if s.requestTimeout > 0 {
		providerOpts = append(providerOpts, provider.WithHTTPClient(newHTTPClient(s.requestTimeout)))
	}
	s.client = provider.New(s.baseURL, s.apiKey, providerOpts...)
	if s.apiKey == "" {
		s.log.Warn(ctx, "no api key configured; serving the built-in mock dataset")
	}

	s.store = repository.NewMemoryStore(ctx)
	s.queue = refresh.NewInMemoryQueue(refresh.WithCapacity(s.queueSize))
	s.pool = refresh.NewWorkerPool(s.workerCount, s.queue, s.client, s.store)
	s.pool.Start(ctx)

	s.scheduler = refresh.NewScheduler(s.queue, s.symbols,
		refresh.WithInterval(s.refreshInterval),
		refresh.WithSchedulerLogger(s.log.Named("scheduler")),
	)
	schedCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.schedulerCancel = cancel
	go s.scheduler.Run(schedCtx)

	s.started = true
	s.log.Info(ctx, "vendorboard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("symbols", len(s.symbols)),
		logger.Duration("refreshInterval", s.refreshInterval))
	return nil
}

// Stop shuts down the refresh pipeline and releases the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.schedulerCancel != nil {
		s.schedulerCancel()
	}
	_ = s.queue.Close()
	s.pool.Stop()
	if err := s.cache.Close(); err != nil {
		s.log.Warn(context.Background(), "closing cache failed", logger.Error(err))
	}
	s.started = false
}

// Refresh enqueues an immediate sweep of all symbols. Returns false
// when the service is not started.
func (s *Service) Refresh(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false
	}
	s.scheduler.Sweep(ctx)
	return true
}

// Symbols returns the tracked symbols.
func (s *Service) Symbols(_ context.Context) []string {
	return append([]string(nil), s.symbols...)
}

// Overviews returns the latest company overviews ordered by symbol.
func (s *Service) Overviews(ctx context.Context) []model.CompanyOverview {
	out := make([]model.CompanyOverview, 0, len(s.symbols))
	for _, snap := range s.store.List(ctx) {
		if snap.Overview.Symbol == "" {
			continue
		}
		out = append(out, snap.Overview)
	}
	return out
}

// Income returns the latest income statement for symbol.
func (s *Service) Income(ctx context.Context, symbol string) (model.IncomeStatement, error) {
	snap, err := s.store.Get(ctx, symbol)
	if err != nil {
		return model.IncomeStatement{}, err
	}
	if snap.Income.Symbol == "" {
		return model.IncomeStatement{}, repository.ErrNotFound
	}
	return snap.Income, nil
}

// Quotes returns the latest intraday bars for symbol, newest first.
func (s *Service) Quotes(ctx context.Context, symbol string) ([]model.Bar, error) {
	snap, err := s.store.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return snap.Bars, nil
}

// OverviewTable builds the formatted overview grid.
func (s *Service) OverviewTable(ctx context.Context) table.Table {
	return table.BuildOverview(s.Overviews(ctx))
}

// VendorTable builds the formatted latest-bar grid.
func (s *Service) VendorTable(ctx context.Context) table.Table {
	series := make(map[string][]model.Bar, len(s.symbols))
	for _, snap := range s.store.List(ctx) {
		series[snap.Symbol] = snap.Bars
	}
	return table.BuildVendor(series)
}

// GetStats returns a point-in-time view of the service internals.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"symbols":     len(s.symbols),
		"workerCount": s.workerCount,
		"mockData":    s.apiKey == "",
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["snapshotCount"] = s.store.Count(ctx)
	}
	return stats
}
