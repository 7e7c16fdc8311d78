package yahoo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/metrics"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// DefaultConcurrency bounds the number of symbols fetched in parallel.
const DefaultConcurrency = 4

// MarketData turns per-symbol chart queries into the price and dividend series the
// analytics engine consumes. One FetchSeries call is one batch per run.
type MarketData struct {
	client      Client
	concurrency int
	now         func() time.Time
}

// NewMarketData creates a MarketData adapter over the given client.
func NewMarketData(client Client) *MarketData {
	return &MarketData{
		client:      client,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
}

// FetchSeries retrieves adjusted close and dividend history for every symbol from start
// through today.
//
// Symbols are fetched concurrently. A symbol that fails is logged and left out of the
// returned maps; the analytics engine then degrades the holdings that use it. The call only
// fails when every symbol fails or ctx is cancelled.
//
// Returns:
//   - map[string]model.PriceSeries: Adjusted close series keyed by requested symbol
//   - map[string]model.DividendSeries: Dividend series keyed by requested symbol
//   - error: apperrors.ErrFailedToFetchPrices when nothing could be fetched
func (m *MarketData) FetchSeries(
	ctx context.Context,
	symbols []string,
	start time.Time,
) (map[string]model.PriceSeries, map[string]model.DividendSeries, error) {
	prices := make(map[string]model.PriceSeries, len(symbols))
	dividends := make(map[string]model.DividendSeries, len(symbols))
	if len(symbols) == 0 {
		return prices, dividends, nil
	}

	end := m.now()
	var mu sync.Mutex
	var failures int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for _, symbol := range symbols {
		g.Go(func() error {
			chart, err := m.fetchChart(gctx, symbol, start, end)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logging.Warn().Err(err).Str("symbol", symbol).Msg("failed to fetch price history")
				metrics.RecordPriceFetchFailure(symbol)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}

			ps, ds := toSeries(symbol, chart)
			mu.Lock()
			prices[symbol] = ps
			dividends[symbol] = ds
			mu.Unlock()

			logging.Debug().
				Str("symbol", symbol).
				Int("prices", ps.Len()).
				Int("dividends", len(ds.Points)).
				Msg("fetched price history")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToFetchPrices, err)
	}
	if failures == len(symbols) {
		return nil, nil, fmt.Errorf("%w: all %d symbols failed", apperrors.ErrFailedToFetchPrices, failures)
	}

	return prices, dividends, nil
}

func (m *MarketData) fetchChart(ctx context.Context, symbol string, start, end time.Time) (PriceChart, error) {
	raw, err := m.client.QuerySymbolHistory(ctx, symbol, start, end)
	if err != nil {
		return PriceChart{}, err
	}
	return m.client.ParseChart(raw)
}

func toSeries(symbol string, chart PriceChart) (model.PriceSeries, model.DividendSeries) {
	ps := model.PriceSeries{
		Symbol: symbol,
		Points: make([]model.PricePoint, 0, len(chart.Indicators)),
	}
	for _, ind := range chart.Indicators {
		ps.Points = append(ps.Points, model.PricePoint{Date: ind.Date, Close: ind.AdjClose})
	}

	ds := model.DividendSeries{
		Symbol: symbol,
		Points: make([]model.DividendPoint, 0, len(chart.Dividends)),
	}
	for _, d := range chart.Dividends {
		ds.Points = append(ds.Points, model.DividendPoint{Date: d.Date, Amount: d.Amount})
	}
	return ps, ds
}
