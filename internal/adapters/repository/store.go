// Package repository defines the snapshot store interface and errors.
// The store holds the latest fetched data per symbol and backs every
// dashboard read.
package repository

import (
	"context"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Snapshot is the latest known data for one symbol.
type Snapshot struct {
	Symbol    string
	Overview  model.CompanyOverview
	Income    model.IncomeStatement
	Bars      []model.Bar
	UpdatedAt time.Time
}

// Store provides read/write access to the latest vendor data.
type Store interface {
	// PutOverview replaces the overview for its symbol.
	PutOverview(ctx context.Context, o model.CompanyOverview)

	// PutIncome replaces the income statement for its symbol.
	PutIncome(ctx context.Context, s model.IncomeStatement)

	// PutBars replaces the intraday bars for symbol, newest first.
	PutBars(ctx context.Context, symbol string, bars []model.Bar)

	// Get returns the snapshot for a symbol.
	// Returns ErrNotFound if the symbol is unknown.
	Get(ctx context.Context, symbol string) (Snapshot, error)

	// List returns all snapshots ordered by symbol.
	List(ctx context.Context) []Snapshot

	// Count returns the number of symbols with snapshot data.
	Count(ctx context.Context) int
}
