package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
)

// MockMarketData is an in-memory service.MarketDataProvider.
// Symbols without a configured series are left out of the result, like a failed fetch.
type MockMarketData struct {
	Prices    map[string]model.PriceSeries
	Dividends map[string]model.DividendSeries
	// MockError is returned from FetchSeries when set
	MockError error

	mu          sync.Mutex
	CallCount   int
	LastSymbols []string
	LastStart   time.Time
}

// NewMockMarketData creates a provider serving the given price series.
func NewMockMarketData(series ...model.PriceSeries) *MockMarketData {
	m := &MockMarketData{
		Prices:    make(map[string]model.PriceSeries),
		Dividends: make(map[string]model.DividendSeries),
	}
	for _, s := range series {
		m.Prices[s.Symbol] = s
	}
	return m
}

// WithDividends adds a dividend series.
func (m *MockMarketData) WithDividends(d model.DividendSeries) *MockMarketData {
	m.Dividends[d.Symbol] = d
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockMarketData) WithError(err error) *MockMarketData {
	m.MockError = err
	return m
}

// FetchSeries returns the configured series for the requested symbols.
func (m *MockMarketData) FetchSeries(
	_ context.Context,
	symbols []string,
	start time.Time,
) (map[string]model.PriceSeries, map[string]model.DividendSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastSymbols = append([]string(nil), symbols...)
	m.LastStart = start

	if m.MockError != nil {
		return nil, nil, m.MockError
	}

	prices := make(map[string]model.PriceSeries)
	dividends := make(map[string]model.DividendSeries)
	for _, s := range symbols {
		if p, ok := m.Prices[s]; ok {
			prices[s] = p
		}
		if d, ok := m.Dividends[s]; ok {
			dividends[s] = d
		}
	}
	return prices, dividends, nil
}

// StaticHoldings is a service.HoldingSource returning a fixed portfolio.
type StaticHoldings struct {
	Portfolio model.Portfolio
	MockError error
}

// LoadHoldings returns the configured portfolio or error.
func (s *StaticHoldings) LoadHoldings(_ context.Context) (model.Portfolio, error) {
	if s.MockError != nil {
		return nil, s.MockError
	}
	return s.Portfolio, nil
}

// FailingStore wraps a table store and fails appends to the named table.
type FailingStore struct {
	Store      service.TableStore
	FailAppend string
	FailRead   string
}

// Append fails for FailAppend and delegates otherwise.
func (f *FailingStore) Append(ctx context.Context, table string, row []string) error {
	if table == f.FailAppend {
		return fmt.Errorf("append to %s: simulated failure", table)
	}
	return f.Store.Append(ctx, table, row)
}

// ReadAll fails for FailRead and delegates otherwise.
func (f *FailingStore) ReadAll(ctx context.Context, table string) ([][]string, error) {
	if table == f.FailRead {
		return nil, fmt.Errorf("read %s: simulated failure", table)
	}
	return f.Store.ReadAll(ctx, table)
}
