package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// DateLayout is the calendar-day format used for snapshot dates and position purchase dates.
const DateLayout = "2006-01-02"

// BuildSnapshot packages a summary and its holding metrics into a snapshot taken at now.
// Positions keep the order of metrics.
//
// Returns apperrors.ErrIncompleteMetrics if any record has no symbol or a non-finite
// numeric field; no partial snapshot is returned in that case.
func BuildSnapshot(now time.Time, summary model.PortfolioSummary, metrics []model.HoldingMetrics) (model.Snapshot, error) {
	positions := make([]model.Position, 0, len(metrics))
	for i, m := range metrics {
		if err := checkComplete(m); err != nil {
			return model.Snapshot{}, fmt.Errorf("position %d: %w", i, err)
		}
		positions = append(positions, model.Position{
			Ticker:         m.Symbol,
			Qty:            m.Quantity,
			PurchaseDate:   m.PurchaseDate.Format(DateLayout),
			PurchasePrice:  m.PurchasePrice,
			CurrentPrice:   m.CurrentPrice,
			CostBasis:      m.CostBasis,
			MarketValue:    m.MarketValue,
			UnrealizedPL:   m.UnrealizedPL,
			PLPct:          m.UnrealizedPLPct,
			DividendIncome: m.DividendIncome,
			TotalReturn:    m.TotalReturn,
			TotalReturnPct: m.TotalReturnPct,
			YieldOnCost:    m.YieldOnCost,
			CAGR:           m.CAGR,
			Beta:           m.Beta,
		})
	}

	return model.Snapshot{
		Timestamp: now,
		Date:      now.Format(DateLayout),
		Summary:   summary,
		Positions: positions,
	}, nil
}

func checkComplete(m model.HoldingMetrics) error {
	if m.Symbol == "" {
		return fmt.Errorf("%w: symbol", apperrors.ErrIncompleteMetrics)
	}
	if m.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: %s purchase_date", apperrors.ErrIncompleteMetrics, m.Symbol)
	}

	fields := map[string]float64{
		"quantity":        m.Quantity,
		"purchase_price":  m.PurchasePrice,
		"current_price":   m.CurrentPrice,
		"cost_basis":      m.CostBasis,
		"market_value":    m.MarketValue,
		"unrealized_pl":   m.UnrealizedPL,
		"dividend_income": m.DividendIncome,
		"total_return":    m.TotalReturn,
		"yield_on_cost":   m.YieldOnCost,
		"cagr":            m.CAGR,
		"beta":            m.Beta,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %s", apperrors.ErrIncompleteMetrics, m.Symbol, name)
		}
	}
	return nil
}
