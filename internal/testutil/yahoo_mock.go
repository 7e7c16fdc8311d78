package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined responses per symbol instead of making actual API calls.
type MockYahooClient struct {
	// Responses maps a symbol to the response returned for it
	Responses map[string]yahoo.Response
	// Errors maps a symbol to the error returned for it
	Errors map[string]error

	mu sync.Mutex
	// QueryCount tracks how many times QuerySymbolHistory was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with no configured symbols.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Responses: make(map[string]yahoo.Response),
		Errors:    make(map[string]error),
	}
}

// WithResponse configures the response returned for symbol.
func (m *MockYahooClient) WithResponse(symbol string, resp yahoo.Response) *MockYahooClient {
	m.Responses[symbol] = resp
	return m
}

// WithError configures the error returned for symbol.
func (m *MockYahooClient) WithError(symbol string, err error) *MockYahooClient {
	m.Errors[symbol] = err
	return m
}

// QuerySymbolHistory returns the configured response or error for symbol.
// Unconfigured symbols fail like an unknown ticker.
func (m *MockYahooClient) QuerySymbolHistory(ctx context.Context, symbol string, _, _ time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	m.QueryCount++
	resp, ok := m.Responses[symbol]
	err := m.Errors[symbol]
	m.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return yahoo.Response{}, ctxErr
	}
	if err != nil {
		return yahoo.Response{}, err
	}
	if !ok {
		return yahoo.Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return resp, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	return yahoo.NewFinanceClient().ParseChart(yahooResult)
}

// CreateMockYahooResponse creates a chart response with one adjusted close per day
// starting at start (midnight UTC).
func CreateMockYahooResponse(symbol string, start time.Time, closes ...float64) yahoo.Response {
	timestamps := make([]int64, len(closes))
	raw := make([]*float64, len(closes))
	adjusted := make([]*float64, len(closes))

	for i := range closes {
		// Market open, as Yahoo reports it
		timestamps[i] = start.AddDate(0, 0, i).Add(14*time.Hour + 30*time.Minute).Unix()
		c := closes[i]
		raw[i] = &c
		adjusted[i] = &c
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:       symbol,
						Currency:     "USD",
						ExchangeName: "NMS",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote:    []yahoo.Quote{{Close: raw}},
						AdjClose: []yahoo.AdjClose{{AdjClose: adjusted}},
					},
				},
			},
		},
	}
}

// WithMockDividend adds a dividend event to a response created by CreateMockYahooResponse.
func WithMockDividend(resp yahoo.Response, date time.Time, amount float64) yahoo.Response {
	result := &resp.Chart.Result[0]
	if result.Events == nil {
		result.Events = &yahoo.Events{Dividends: make(map[string]yahoo.DividendEvent)}
	}
	ts := date.Add(14*time.Hour + 30*time.Minute).Unix()
	result.Events.Dividends[fmt.Sprintf("%d", ts)] = yahoo.DividendEvent{Amount: amount, Date: ts}
	return resp
}
