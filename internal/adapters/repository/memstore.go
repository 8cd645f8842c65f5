package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/metrics"
)

// MemoryStore implements Store with a mutex-guarded map. Snapshots are
// written whole by refresh workers and read by HTTP handlers; copies
// cross the boundary so neither side can mutate shared state.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	now       func() time.Time
}

// NewMemoryStore creates an empty snapshot store.
func NewMemoryStore(_ context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		snapshots: make(map[string]Snapshot),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutOverview replaces the overview for its symbol.
func (s *MemoryStore) PutOverview(_ context.Context, o model.CompanyOverview) {
	symbol := model.NormalizeSymbol(o.Symbol)
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshots[symbol]
	snap.Symbol = symbol
	snap.Overview = o
	snap.UpdatedAt = s.now()
	s.snapshots[symbol] = snap
	s.recordUpdate(symbol, snap.UpdatedAt)
}

// PutIncome replaces the income statement for its symbol.
func (s *MemoryStore) PutIncome(_ context.Context, stmt model.IncomeStatement) {
	symbol := model.NormalizeSymbol(stmt.Symbol)
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshots[symbol]
	snap.Symbol = symbol
	snap.Income = stmt
	snap.UpdatedAt = s.now()
	s.snapshots[symbol] = snap
	s.recordUpdate(symbol, snap.UpdatedAt)
}

// PutBars replaces the intraday bars for symbol, newest first.
func (s *MemoryStore) PutBars(_ context.Context, symbol string, bars []model.Bar) {
	symbol = model.NormalizeSymbol(symbol)
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshots[symbol]
	snap.Symbol = symbol
	snap.Bars = append([]model.Bar(nil), bars...)
	snap.UpdatedAt = s.now()
	s.snapshots[symbol] = snap
	s.recordUpdate(symbol, snap.UpdatedAt)
}

// Get returns the snapshot for a symbol.
func (s *MemoryStore) Get(_ context.Context, symbol string) (Snapshot, error) {
	symbol = model.NormalizeSymbol(symbol)
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[symbol]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return copySnapshot(snap), nil
}

// List returns all snapshots ordered by symbol.
func (s *MemoryStore) List(_ context.Context) []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, copySnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Count returns the number of symbols with snapshot data.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// recordUpdate keeps the snapshot metrics current. Caller holds the lock.
func (s *MemoryStore) recordUpdate(symbol string, at time.Time) {
	metrics.RecordSnapshotUpdate()
	metrics.UpdateSnapshotSymbols(len(s.snapshots))
	metrics.UpdateSnapshotAge(symbol, s.now().Sub(at).Seconds())
}

func copySnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Bars = append([]model.Bar(nil), snap.Bars...)
	out.Income.AnnualReports = append([]model.IncomeReport(nil), snap.Income.AnnualReports...)
	return out
}
