package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
)

// Day returns midnight UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DailySeries builds a price series with one close per calendar day starting at start.
//
// Example usage:
//
//	prices := testutil.DailySeries("AAPL", testutil.Day(2024, 1, 1), 100, 101, 102)
func DailySeries(symbol string, start time.Time, closes ...float64) model.PriceSeries {
	series := model.PriceSeries{Symbol: symbol, Points: make([]model.PricePoint, len(closes))}
	for i, c := range closes {
		series.Points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return series
}

// Dividends builds a dividend series from the given points.
func Dividends(symbol string, points ...model.DividendPoint) model.DividendSeries {
	return model.DividendSeries{Symbol: symbol, Points: points}
}

// SnapshotBuilder provides a fluent interface for creating test snapshots.
//
// Example usage:
//
//	snap := testutil.NewSnapshot(ts).
//	    WithPosition("AAPL", 10, 150).
//	    WithPosition("MSFT", 5, 300).
//	    Build()
type SnapshotBuilder struct {
	snapshot model.Snapshot
}

// NewSnapshot creates a SnapshotBuilder for a snapshot taken at ts with no positions.
func NewSnapshot(ts time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{snapshot: model.Snapshot{
		Timestamp: ts,
		Date:      ts.Format("2006-01-02"),
		Positions: []model.Position{},
	}}
}

// WithPosition adds a position bought at a price of 100 and now priced at price.
// The summary totals are updated accordingly.
func (b *SnapshotBuilder) WithPosition(ticker string, qty, price float64) *SnapshotBuilder {
	cost := qty * 100
	value := qty * price
	b.snapshot.Positions = append(b.snapshot.Positions, model.Position{
		Ticker:         ticker,
		Qty:            qty,
		PurchaseDate:   "2023-01-03",
		PurchasePrice:  100,
		CurrentPrice:   price,
		CostBasis:      cost,
		MarketValue:    value,
		UnrealizedPL:   value - cost,
		PLPct:          (value - cost) / cost * 100,
		TotalReturn:    value - cost,
		TotalReturnPct: (value - cost) / cost * 100,
	})

	sum := &b.snapshot.Summary
	sum.TotalCost += cost
	sum.TotalValue += value
	sum.TotalUnrealizedPL = sum.TotalValue - sum.TotalCost
	sum.TotalReturn = sum.TotalUnrealizedPL + sum.TotalDividendIncome
	sum.TotalUnrealizedPLPct = sum.TotalUnrealizedPL / sum.TotalCost * 100
	sum.TotalReturnPct = sum.TotalReturn / sum.TotalCost * 100
	sum.PositionCount = len(b.snapshot.Positions)
	return b
}

// WithTotals overrides the summary's value and cost.
func (b *SnapshotBuilder) WithTotals(value, cost float64) *SnapshotBuilder {
	b.snapshot.Summary.TotalValue = value
	b.snapshot.Summary.TotalCost = cost
	return b
}

// Build returns the snapshot.
func (b *SnapshotBuilder) Build() model.Snapshot {
	return b.snapshot
}

// Persist appends the snapshot to the snapshots table of store and returns it.
func (b *SnapshotBuilder) Persist(t *testing.T, store service.TableStore) model.Snapshot {
	t.Helper()

	row, err := repository.EncodeSnapshot(b.snapshot)
	if err != nil {
		t.Fatalf("Failed to encode snapshot: %v", err)
	}
	if err := store.Append(context.Background(), repository.TableSnapshots, row); err != nil {
		t.Fatalf("Failed to persist snapshot: %v", err)
	}
	return b.snapshot
}
