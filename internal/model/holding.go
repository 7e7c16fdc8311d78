package model

import "time"

// Holding is a single purchase of a symbol. Each holding is treated as one lot.
type Holding struct {
	Symbol       string    `json:"symbol"`
	Quantity     float64   `json:"quantity"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// Portfolio is the ordered set of holdings processed in one run.
type Portfolio []Holding

// Symbols returns the distinct symbols of the portfolio in first-seen order.
func (p Portfolio) Symbols() []string {
	seen := make(map[string]bool, len(p))
	symbols := make([]string, 0, len(p))
	for _, h := range p {
		if seen[h.Symbol] {
			continue
		}
		seen[h.Symbol] = true
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// EarliestPurchase returns the oldest purchase date in the portfolio.
// The zero time is returned for an empty portfolio.
func (p Portfolio) EarliestPurchase() time.Time {
	var earliest time.Time
	for i, h := range p {
		if i == 0 || h.PurchaseDate.Before(earliest) {
			earliest = h.PurchaseDate
		}
	}
	return earliest
}
