package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// AlignDate finds the trading day in series nearest to target.
//
// Weekends and holidays are absorbed by picking whichever neighbouring trading day is
// closer; when target sits exactly between two trading days the earlier one wins.
// Targets before the first or after the last point resolve to that endpoint.
//
// Parameters:
//   - series: Adjusted close history, sorted ascending by date
//   - target: The requested date (typically a purchase date)
//
// Returns:
//   - model.PricePoint: The aligned trading day and its adjusted close
//   - int: Index of the aligned point within series.Points
//   - error: apperrors.ErrNoPriceData if the series is empty
func AlignDate(series model.PriceSeries, target time.Time) (model.PricePoint, int, error) {
	points := series.Points
	if len(points) == 0 {
		return model.PricePoint{}, -1, fmt.Errorf("%w: %s", apperrors.ErrNoPriceData, series.Symbol)
	}

	// First index whose date is not before target.
	i := sort.Search(len(points), func(i int) bool {
		return !points[i].Date.Before(target)
	})

	switch {
	case i == 0:
		return points[0], 0, nil
	case i == len(points):
		return points[i-1], i - 1, nil
	}

	before := target.Sub(points[i-1].Date)
	after := points[i].Date.Sub(target)
	if after < before {
		return points[i], i, nil
	}
	return points[i-1], i - 1, nil
}
