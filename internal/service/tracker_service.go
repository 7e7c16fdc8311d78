package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Tracker/internal/analytics"
	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/metrics"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
)

// FetchBuffer is subtracted from the earliest purchase date when requesting price
// history, so a purchase on a non-trading day still has a neighbour to align to.
const FetchBuffer = 5 * 24 * time.Hour

// TrackerService runs the analytics pipeline: fetch prices, compute per-holding metrics,
// aggregate, snapshot and, when historical tracking is enabled, persist the snapshot and
// its day-over-day change.
type TrackerService struct {
	holdings HoldingSource
	market   MarketDataProvider
	store    TableStore
	history  *HistoryService
	cfg      config.AnalyticsConfig
	now      func() time.Time

	// mu serialises runs so a manual trigger and a scheduled run never interleave appends.
	mu sync.Mutex
}

// NewTrackerService creates a new TrackerService.
//
// Parameters:
//   - holdings: Source of the portfolio processed each run
//   - market: Price and dividend history provider
//   - store: Snapshot and daily change table store
//   - cfg: Analytics options (historical tracking, benchmark, trend window)
func NewTrackerService(
	holdings HoldingSource,
	market MarketDataProvider,
	store TableStore,
	cfg config.AnalyticsConfig,
) *TrackerService {
	return &TrackerService{
		holdings: holdings,
		market:   market,
		store:    store,
		history:  NewHistoryService(store),
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for snapshot timestamps and metric windows.
func (s *TrackerService) WithClock(now func() time.Time) *TrackerService {
	s.now = now
	s.history.WithClock(now)
	return s
}

// History returns the service reading the snapshots this service writes.
func (s *TrackerService) History() *HistoryService {
	return s.history
}

// Config returns the analytics options the service runs with.
func (s *TrackerService) Config() config.AnalyticsConfig {
	return s.cfg
}

// Run executes one tracker run.
//
// Pipeline:
//  1. Load holdings and fetch price and dividend history for every symbol plus the benchmark
//  2. Compute metrics per holding; holdings without price data are degraded, not dropped
//  3. Aggregate into a portfolio summary and build the snapshot
//  4. With historical tracking: read the previous snapshot, append the new one, diff the two
//     and append the change unless this is the first run
//
// Failures in step 4 are logged and reported through SnapshotSaved/ChangeSaved; the run
// itself still succeeds.
//
// Returns:
//   - model.RunSummary: Metrics, snapshot and change of this run
//   - error: If holdings cannot be loaded, prices cannot be fetched, or the snapshot cannot be built
func (s *TrackerService) Run(ctx context.Context) (model.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	summary, err := s.run(ctx)
	status := metrics.RunStatusSuccess
	if err != nil {
		status = metrics.RunStatusFailure
		logging.Error().Err(err).Str("run_id", summary.RunID).Msg("tracker run failed")
	}
	metrics.RecordRun(status, s.now().Sub(started))
	return summary, err
}

func (s *TrackerService) run(ctx context.Context) (model.RunSummary, error) {
	summary := model.RunSummary{
		RunID:            uuid.New().String(),
		DegradedHoldings: []model.DegradedEntry{},
	}
	log := logging.Logger.With().Str("run_id", summary.RunID).Logger()

	portfolio, err := s.holdings.LoadHoldings(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadHoldings, err)
	}
	if len(portfolio) == 0 {
		return summary, apperrors.ErrNoHoldings
	}

	symbols := portfolio.Symbols()
	if s.cfg.BenchmarkSymbol != "" && !slices.Contains(symbols, s.cfg.BenchmarkSymbol) {
		symbols = append(symbols, s.cfg.BenchmarkSymbol)
	}
	start := portfolio.EarliestPurchase().Add(-FetchBuffer)

	log.Info().
		Int("holdings", len(portfolio)).
		Strs("symbols", symbols).
		Time("start", start).
		Msg("fetching price history")

	prices, dividends, err := s.market.FetchSeries(ctx, symbols, start)
	if err != nil {
		return summary, err
	}

	now := s.now()
	calc := analytics.NewCalculator(s.cfg.BenchmarkSymbol)
	calc.Now = func() time.Time { return now }

	results := calc.CalculateAll(portfolio, prices, dividends)
	for _, r := range results {
		if !r.Degraded {
			continue
		}
		log.Warn().Err(r.Reason).Str("symbol", r.Metrics.Symbol).Msg("holding computed with degraded metrics")
		summary.DegradedHoldings = append(summary.DegradedHoldings, model.DegradedEntry{
			Symbol: r.Metrics.Symbol,
			Reason: r.Reason.Error(),
		})
	}
	metrics.RecordDegradedHoldings(len(summary.DegradedHoldings))

	summary.Holdings = analytics.MetricsOf(results)
	portfolioSummary := analytics.Aggregate(summary.Holdings)

	snapshot, err := analytics.BuildSnapshot(now, portfolioSummary, summary.Holdings)
	if err != nil {
		return summary, err
	}
	summary.Snapshot = snapshot
	metrics.SetPortfolioTotals(portfolioSummary.TotalValue, portfolioSummary.TotalCost, portfolioSummary.PositionCount)

	log.Info().
		Str("date", snapshot.Date).
		Float64("total_value", portfolioSummary.TotalValue).
		Float64("total_cost", portfolioSummary.TotalCost).
		Int("positions", portfolioSummary.PositionCount).
		Msg("created snapshot")

	if !s.cfg.UseHistoricalTracking {
		return summary, nil
	}

	s.track(ctx, &summary, log)
	return summary, nil
}

// track persists the snapshot and its change against the previous snapshot.
// Each step is skipped, not aborted, when the step it depends on failed.
func (s *TrackerService) track(ctx context.Context, summary *model.RunSummary, log zerolog.Logger) {
	previous, readErr := s.history.LatestSnapshot(ctx)
	if readErr != nil {
		log.Error().Err(readErr).Msg("failed to read previous snapshot, skipping daily change")
	}

	if err := s.appendSnapshot(ctx, summary.Snapshot); err != nil {
		log.Error().Err(err).Msg("failed to save snapshot")
	} else {
		summary.SnapshotSaved = true
		log.Info().Str("date", summary.Snapshot.Date).Msg("saved snapshot")
	}

	if readErr != nil {
		return
	}

	change := analytics.Diff(summary.Snapshot, previous)
	summary.Change = &change

	if change.IsFirstRun {
		log.Info().Msg("first snapshot, skipping daily change save")
		return
	}
	if !summary.SnapshotSaved {
		return
	}

	if err := s.appendChange(ctx, change); err != nil {
		log.Error().Err(err).Msg("failed to save daily change")
		return
	}
	summary.ChangeSaved = true
	log.Info().
		Str("date", change.Date).
		Float64("value_change", change.ValueChange).
		Int("days_between", change.DaysBetween).
		Msg("saved daily change")
}

func (s *TrackerService) appendSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	row, err := repository.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSnapshot, err)
	}
	if err := s.store.Append(ctx, repository.TableSnapshots, row); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSnapshot, err)
	}
	return nil
}

func (s *TrackerService) appendChange(ctx context.Context, change model.DailyChange) error {
	row, err := repository.EncodeDailyChange(change)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveDailyChange, err)
	}
	if err := s.store.Append(ctx, repository.TableDailyChanges, row); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveDailyChange, err)
	}
	return nil
}
