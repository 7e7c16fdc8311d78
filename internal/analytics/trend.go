package analytics

import (
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// ExtractTrend reduces the snapshot history to chart points for the last windowDays days.
//
// Snapshots dated on or after now-windowDays are kept in history order. If none qualify,
// the whole history is returned instead so a chart always has data once any snapshot exists.
//
// Returns apperrors.ErrEmptyHistory when history is empty.
func ExtractTrend(history []model.Snapshot, windowDays int, now time.Time) ([]model.TrendPoint, error) {
	if len(history) == 0 {
		return nil, apperrors.ErrEmptyHistory
	}

	all := make([]model.TrendPoint, 0, len(history))
	for _, s := range history {
		all = append(all, trendPoint(s))
	}

	cutoff := now.AddDate(0, 0, -windowDays)
	filtered := make([]model.TrendPoint, 0, len(all))
	for _, p := range all {
		if !p.Date.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) == 0 {
		return all, nil
	}
	return filtered, nil
}

// trendPoint dates a snapshot by its calendar day, falling back to the timestamp
// when the date string does not parse.
func trendPoint(s model.Snapshot) model.TrendPoint {
	date, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		date = s.Timestamp
	}
	return model.TrendPoint{
		Date:       date,
		TotalValue: s.Summary.TotalValue,
		TotalCost:  s.Summary.TotalCost,
	}
}
