package analytics

import "github.com/ndewijer/Portfolio-Tracker/internal/model"

// Aggregate reduces holding metrics to portfolio totals. Percentages are 0 when
// the total cost is 0; an empty slice yields an all-zero summary.
func Aggregate(metrics []model.HoldingMetrics) model.PortfolioSummary {
	var totalCost, totalValue, totalDividends float64
	for _, m := range metrics {
		totalCost += m.CostBasis
		totalValue += m.MarketValue
		totalDividends += m.DividendIncome
	}

	unrealizedPL := totalValue - totalCost
	totalReturn := unrealizedPL + totalDividends

	return model.PortfolioSummary{
		TotalCost:            totalCost,
		TotalValue:           totalValue,
		TotalUnrealizedPL:    unrealizedPL,
		TotalUnrealizedPLPct: percentOf(unrealizedPL, totalCost),
		TotalDividendIncome:  totalDividends,
		TotalReturn:          totalReturn,
		TotalReturnPct:       percentOf(totalReturn, totalCost),
		PositionCount:        len(metrics),
	}
}
