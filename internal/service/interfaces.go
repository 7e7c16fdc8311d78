package service

import (
	"context"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// MarketDataProvider supplies adjusted close and dividend history.
// Implementations return every symbol they could fetch from start through the latest
// trading day; symbols missing from the result are treated as having no price data.
type MarketDataProvider interface {
	FetchSeries(ctx context.Context, symbols []string, start time.Time) (map[string]model.PriceSeries, map[string]model.DividendSeries, error)
}

// TableStore is an append-only store of ordered rows.
// ReadAll returns the header row first, followed by rows in insertion order.
type TableStore interface {
	Append(ctx context.Context, table string, row []string) error
	ReadAll(ctx context.Context, table string) ([][]string, error)
}

// HoldingSource loads the portfolio processed by a run.
type HoldingSource interface {
	LoadHoldings(ctx context.Context) (model.Portfolio, error)
}
