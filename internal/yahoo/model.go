package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
//
// The structure includes:
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each trading day
//   - Chart.Result[].Indicators: Quote arrays and the adjusted close array
//   - Chart.Result[].Events: Dividend events keyed by timestamp (requested with events=div)
//   - Chart.Error: Optional error object from Yahoo
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart wraps the result list and error of a chart response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *Error   `json:"error"`
}

// Error is the error object Yahoo returns for unknown symbols or bad ranges.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is the chart data for a single symbol.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
	Events     *Events             `json:"events,omitempty"`
}

// Meta holds symbol metadata.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer holds the quote and adjusted close arrays.
// Values are pointers because Yahoo reports missing days as null.
type IndicatorsContainer struct {
	Quote    []Quote    `json:"quote"`
	AdjClose []AdjClose `json:"adjclose"`
}

// Quote holds the raw OHLCV arrays.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// AdjClose holds the split- and dividend-adjusted close array.
type AdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

// Events holds corporate actions attached to the chart.
type Events struct {
	Dividends map[string]DividendEvent `json:"dividends"`
}

// DividendEvent is one cash dividend, dated by its ex-dividend timestamp.
type DividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// PriceChart represents a parsed chart: metadata plus one Indicators entry per trading day
// that has a usable adjusted close, and the dividends paid in the range.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
	Dividends        []Dividend   `json:"dividends"`
}

// Indicators represents a single day's price data.
//
// Fields:
//   - Date: Trading date (midnight UTC)
//   - PriceClose: Raw closing price (0 when Yahoo reported null)
//   - AdjClose: Adjusted closing price used for all return math
type Indicators struct {
	Date       time.Time
	PriceClose float64
	AdjClose   float64
}

// Dividend is a per-share cash dividend on its ex-dividend day (midnight UTC).
type Dividend struct {
	Date   time.Time
	Amount float64
}
