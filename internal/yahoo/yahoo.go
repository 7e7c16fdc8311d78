package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

// DefaultBaseURL is the Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client is the subset of FinanceClient the market-data adapter depends on.
// Tests substitute a mock.
type Client interface {
	QuerySymbolHistory(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// FinanceClient provides methods for fetching price and dividend history from Yahoo Finance.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
	}
}

// NewFinanceClientWithBaseURL creates a client against another chart endpoint, e.g. a test server.
func NewFinanceClientWithBaseURL(httpClient *http.Client, baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// ParseChart converts a raw Yahoo Finance response into a structured chart.
//
// Days whose adjusted close is null are dropped. When the response has no adjclose
// array the raw close is used instead. Dividends are sorted by date.
//
// Returns:
//   - PriceChart: Structured chart with one entry per usable trading day
//   - error: If the response has no result, no timestamps, or mismatched array lengths
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	closes := result.Indicators.Quote[0].Close
	adjusted := closes
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		adjusted = result.Indicators.AdjClose[0].AdjClose
	}

	if len(closes) != len(result.Timestamp) || len(adjusted) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if adjusted[i] == nil {
			continue
		}
		date := truncateDay(time.Unix(ts, 0))
		// Yahoo occasionally repeats the last day with an intraday timestamp.
		if n := len(indicators); n > 0 && !indicators[n-1].Date.Before(date) {
			indicators = indicators[:n-1]
		}
		ind := Indicators{
			Date:     date,
			AdjClose: *adjusted[i],
		}
		if closes[i] != nil {
			ind.PriceClose = *closes[i]
		}
		indicators = append(indicators, ind)
	}

	var dividends []Dividend
	if result.Events != nil {
		for _, ev := range result.Events.Dividends {
			dividends = append(dividends, Dividend{
				Date:   truncateDay(time.Unix(ev.Date, 0)),
				Amount: ev.Amount,
			})
		}
		sort.Slice(dividends, func(i, j int) bool {
			return dividends[i].Date.Before(dividends[j].Date)
		})
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
		Dividends:        dividends,
	}, nil
}

// QuerySymbolHistory fetches daily prices and dividend events for a symbol within a date range.
//
// Parameters:
//   - ctx: Request context; cancellation aborts the HTTP call
//   - symbol: Stock ticker symbol (e.g., "AAPL", "SPY")
//   - startDate: Beginning of date range (inclusive)
//   - endDate: End of date range (inclusive)
//
// Returns:
//   - Response: Raw API response containing prices, adjusted closes and dividends
//   - error: If the HTTP request fails, Yahoo returns an error, or no results are found
func (c *FinanceClient) QuerySymbolHistory(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	url := fmt.Sprintf(
		"%s/%s?interval=1d&period1=%d&period2=%d&events=div",
		c.baseURL,
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// queryYahoo executes a request against the chart API and decodes the response.
// A browser User-Agent is sent because Yahoo rejects the default Go client.
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
