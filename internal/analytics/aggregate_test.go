package analytics_test

import (
	"testing"

	"github.com/ndewijer/Portfolio-Tracker/internal/analytics"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

func TestAggregate(t *testing.T) {
	t.Run("sums holdings and derives percentages", func(t *testing.T) {
		metrics := []model.HoldingMetrics{
			{Symbol: "A", CostBasis: 1250, MarketValue: 2000, DividendIncome: 4.7},
			{Symbol: "B", CostBasis: 750.5, MarketValue: 700.25, DividendIncome: 10},
			{Symbol: "C", CostBasis: 0, MarketValue: 50, DividendIncome: 0}, // degraded
		}

		s := analytics.Aggregate(metrics)

		wantCost := 1250 + 750.5 + 0.0
		wantValue := 2000 + 700.25 + 50.0
		assertFloat(t, "TotalCost", s.TotalCost, wantCost)
		assertFloat(t, "TotalValue", s.TotalValue, wantValue)
		assertFloat(t, "TotalDividendIncome", s.TotalDividendIncome, 14.7)
		assertFloat(t, "TotalUnrealizedPL", s.TotalUnrealizedPL, wantValue-wantCost)
		assertFloat(t, "TotalUnrealizedPLPct", s.TotalUnrealizedPLPct, (wantValue-wantCost)/wantCost*100)
		assertFloat(t, "TotalReturn", s.TotalReturn, wantValue-wantCost+14.7)
		assertFloat(t, "TotalReturnPct", s.TotalReturnPct, (wantValue-wantCost+14.7)/wantCost*100)

		if s.PositionCount != 3 {
			t.Errorf("Expected PositionCount 3, got %d", s.PositionCount)
		}
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		s := analytics.Aggregate(nil)
		if s != (model.PortfolioSummary{}) {
			t.Errorf("Expected zero summary, got %+v", s)
		}
	})

	t.Run("zero total cost guards percentages", func(t *testing.T) {
		s := analytics.Aggregate([]model.HoldingMetrics{{Symbol: "X", MarketValue: 100}})
		if s.TotalUnrealizedPLPct != 0 || s.TotalReturnPct != 0 {
			t.Errorf("Expected zero percentages, got %v and %v", s.TotalUnrealizedPLPct, s.TotalReturnPct)
		}
	})
}
