package analytics

import (
	"math"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// beta returns cov(asset, benchmark) / var(benchmark) over the days both series have a
// return on or after since. Sample (n-1) statistics are used for both terms.
// Any degenerate input yields 0: beta is best-effort and never fails a holding.
func beta(asset, benchmark []model.ReturnPoint, since time.Time) float64 {
	benchByDay := make(map[int64]float64, len(benchmark))
	for _, r := range benchmark {
		if r.Date.Before(since) {
			continue
		}
		benchByDay[dayKey(r.Date)] = r.Return
	}

	var xs, ys []float64
	for _, r := range asset {
		if r.Date.Before(since) {
			continue
		}
		b, ok := benchByDay[dayKey(r.Date)]
		if !ok {
			continue
		}
		xs = append(xs, r.Return)
		ys = append(ys, b)
	}

	if len(xs) < 2 {
		return 0
	}

	variance := sampleVariance(ys)
	if variance == 0 || math.IsNaN(variance) {
		return 0
	}

	result := sampleCovariance(xs, ys) / variance
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleVariance(values []float64) float64 {
	return sampleCovariance(values, values)
}

// sampleCovariance assumes len(xs) == len(ys) >= 2.
func sampleCovariance(xs, ys []float64) float64 {
	mx, my := mean(xs), mean(ys)
	var sum float64
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}

// dayKey identifies a calendar day independent of time-of-day.
func dayKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}

// daysBetween returns the whole number of days from start to end, floored.
func daysBetween(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}
