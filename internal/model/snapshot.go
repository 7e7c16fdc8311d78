package model

import "time"

// Position is the persisted form of a holding inside a snapshot. It carries every
// field a later day-over-day comparison needs.
type Position struct {
	Ticker         string  `json:"ticker"`
	Qty            float64 `json:"qty"`
	PurchaseDate   string  `json:"purchase_date"` // YYYY-MM-DD
	PurchasePrice  float64 `json:"purchase_price"`
	CurrentPrice   float64 `json:"current_price"`
	CostBasis      float64 `json:"cost_basis"`
	MarketValue    float64 `json:"market_value"`
	UnrealizedPL   float64 `json:"unrealized_pl"`
	PLPct          float64 `json:"pl_pct"`
	DividendIncome float64 `json:"dividend_income"`
	TotalReturn    float64 `json:"total_return"`
	TotalReturnPct float64 `json:"total_return_pct"`
	YieldOnCost    float64 `json:"yield_on_cost"`
	CAGR           float64 `json:"cagr"`
	Beta           float64 `json:"beta"`
}

// Snapshot is a point-in-time summary of the portfolio. Snapshots are appended to
// the snapshot store once per run and never modified afterwards.
type Snapshot struct {
	Timestamp time.Time        `json:"timestamp"`
	Date      string           `json:"date"` // Calendar day, YYYY-MM-DD
	Summary   PortfolioSummary `json:"summary"`
	Positions []Position       `json:"positions"`
}

// TrendPoint is one snapshot reduced to what a value-over-time chart needs.
type TrendPoint struct {
	Date       time.Time `json:"date"`
	TotalValue float64   `json:"total_value"`
	TotalCost  float64   `json:"total_cost"`
}
