package model

import "time"

// HoldingMetrics contains the performance figures of one holding as of a run.
// Percentage fields (UnrealizedPLPct, TotalReturnPct, YieldOnCost, CAGR) are
// numeric percentages, e.g. 12.5 means 12.5%.
type HoldingMetrics struct {
	Symbol               string    `json:"symbol"`
	Quantity             float64   `json:"quantity"`
	PurchaseDate         time.Time `json:"purchase_date"` // Aligned to the nearest trading day
	PurchasePrice        float64   `json:"purchase_price"`
	CurrentPrice         float64   `json:"current_price"`
	CostBasis            float64   `json:"cost_basis"`
	MarketValue          float64   `json:"market_value"`
	UnrealizedPL         float64   `json:"unrealized_pl"`
	UnrealizedPLPct      float64   `json:"unrealized_pl_pct"`
	DividendIncome       float64   `json:"dividend_income"`        // Since the aligned purchase date
	DividendIncomeRecent float64   `json:"dividend_income_recent"` // Trailing four weeks
	TotalReturn          float64   `json:"total_return"`
	TotalReturnPct       float64   `json:"total_return_pct"`
	YieldOnCost          float64   `json:"yield_on_cost"`
	CAGR                 float64   `json:"cagr"`
	Beta                 float64   `json:"beta"`
}

// HoldingResult is the outcome of computing one holding. A degraded result still
// carries a usable (zeroed) metrics record; Reason explains the degradation.
type HoldingResult struct {
	Metrics  HoldingMetrics
	Degraded bool
	Reason   error
}

// PortfolioSummary contains the portfolio-level totals derived from all holdings.
type PortfolioSummary struct {
	TotalCost            float64 `json:"total_cost"`
	TotalValue           float64 `json:"total_value"`
	TotalUnrealizedPL    float64 `json:"unrealized_pl"`
	TotalUnrealizedPLPct float64 `json:"unrealized_pl_pct"`
	TotalDividendIncome  float64 `json:"dividend_income"`
	TotalReturn          float64 `json:"total_return"`
	TotalReturnPct       float64 `json:"total_return_pct"`
	PositionCount        int     `json:"position_count"`
}
