package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/analytics"
	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
)

// HistoryService reads persisted snapshots and daily changes.
type HistoryService struct {
	store TableStore
	now   func() time.Time
}

// NewHistoryService creates a new HistoryService over the given table store.
func NewHistoryService(store TableStore) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for the trend window.
func (s *HistoryService) WithClock(now func() time.Time) *HistoryService {
	s.now = now
	return s
}

// Snapshots returns every persisted snapshot in insertion order.
// Rows that cannot be decoded are skipped with a warning.
func (s *HistoryService) Snapshots(ctx context.Context) ([]model.Snapshot, error) {
	rows, err := s.store.ReadAll(ctx, repository.TableSnapshots)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHistory, err)
	}

	snapshots := make([]model.Snapshot, 0, len(rows))
	for i, row := range dataRows(rows) {
		snap, err := repository.DecodeSnapshot(row)
		if err != nil {
			logging.Warn().Err(err).Int("row", i+1).Msg("skipping unreadable snapshot row")
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// LatestSnapshot returns the most recently appended snapshot.
//
// Returns:
//   - *model.Snapshot: The last snapshot, or nil when only the header row exists
//   - error: If the store cannot be read or the last row cannot be decoded
func (s *HistoryService) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	rows, err := s.store.ReadAll(ctx, repository.TableSnapshots)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHistory, err)
	}

	data := dataRows(rows)
	if len(data) == 0 {
		return nil, nil
	}

	snap, err := repository.DecodeSnapshot(data[len(data)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHistory, err)
	}
	return &snap, nil
}

// Changes returns every persisted daily change in insertion order.
// Rows that cannot be decoded are skipped with a warning.
func (s *HistoryService) Changes(ctx context.Context) ([]model.DailyChangeRecord, error) {
	rows, err := s.store.ReadAll(ctx, repository.TableDailyChanges)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveChanges, err)
	}

	changes := make([]model.DailyChangeRecord, 0, len(rows))
	for i, row := range dataRows(rows) {
		rec, err := repository.DecodeDailyChange(row)
		if err != nil {
			logging.Warn().Err(err).Int("row", i+1).Msg("skipping unreadable daily change row")
			continue
		}
		changes = append(changes, rec)
	}
	return changes, nil
}

// Trend returns total value and cost over the last windowDays days of snapshots,
// falling back to the whole history when none fall inside the window.
//
// Returns apperrors.ErrEmptyHistory when no snapshot has been persisted.
func (s *HistoryService) Trend(ctx context.Context, windowDays int) ([]model.TrendPoint, error) {
	history, err := s.Snapshots(ctx)
	if err != nil {
		return nil, err
	}

	points, err := analytics.ExtractTrend(history, windowDays, s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyHistory) {
			logging.Warn().Msg("not enough data for trend")
		}
		return nil, err
	}
	return points, nil
}

// dataRows strips the header row.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
