package model

import "time"

// PricePoint is a single adjusted close for a trading day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds the adjusted close history of one symbol.
// Points are sorted ascending by date and contain no duplicate dates.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of trading days in the series.
func (s PriceSeries) Len() int {
	return len(s.Points)
}

// Latest returns the final tick of the series, which defines the current price.
// The boolean is false when the series is empty.
func (s PriceSeries) Latest() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// DailyReturns returns the day-over-day fractional change of the adjusted close,
// keyed by the later of the two dates. Days following a zero close are skipped.
func (s PriceSeries) DailyReturns() []ReturnPoint {
	if len(s.Points) < 2 {
		return nil
	}
	returns := make([]ReturnPoint, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		prev := s.Points[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, ReturnPoint{
			Date:   s.Points[i].Date,
			Return: s.Points[i].Close/prev - 1,
		})
	}
	return returns
}

// ReturnPoint is a daily fractional price change.
type ReturnPoint struct {
	Date   time.Time
	Return float64
}

// DividendPoint is a per-share cash dividend paid on an ex-dividend date.
type DividendPoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendSeries holds the dividend history of one symbol. Days without a
// dividend are simply absent.
type DividendSeries struct {
	Symbol string          `json:"symbol"`
	Points []DividendPoint `json:"points"`
}

// SumSince returns the total per-share dividend paid on or after since.
func (s DividendSeries) SumSince(since time.Time) float64 {
	var total float64
	for _, d := range s.Points {
		if !d.Date.Before(since) {
			total += d.Amount
		}
	}
	return total
}
