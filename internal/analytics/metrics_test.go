package analytics_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/analytics"
	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

func fixedCalculator(now time.Time) *analytics.Calculator {
	return &analytics.Calculator{
		Benchmark: "SPY",
		Now:       func() time.Time { return now },
	}
}

// TestCalculator_Calculate_EndToEnd tests the documented AAPL example.
//
// WHY: This is the reference scenario for purchase alignment, cost basis, market value and
// dividend attribution. Any drift here changes every downstream snapshot.
func TestCalculator_Calculate_EndToEnd(t *testing.T) {
	now := day("2024-06-03")
	calc := fixedCalculator(now)

	prices := series("AAPL",
		pp("2023-01-03", 125.0),
		pp("2023-01-04", 126.0),
		pp("2023-06-01", 180.0),
		pp("2024-06-03", 200.0),
	)
	dividends := model.DividendSeries{Symbol: "AAPL", Points: []model.DividendPoint{
		{Date: day("2023-02-15"), Amount: 0.23},
		{Date: day("2023-05-15"), Amount: 0.24},
	}}
	holding := model.Holding{Symbol: "AAPL", Quantity: 10, PurchaseDate: day("2023-01-03")}

	result := calc.Calculate(holding, prices, dividends, model.PriceSeries{})
	if result.Degraded {
		t.Fatalf("Expected healthy result, got degraded: %v", result.Reason)
	}
	m := result.Metrics

	assertFloat(t, "PurchasePrice", m.PurchasePrice, 125.0)
	assertFloat(t, "CurrentPrice", m.CurrentPrice, 200.0)
	assertFloat(t, "CostBasis", m.CostBasis, 1250.0)
	assertFloat(t, "MarketValue", m.MarketValue, 2000.0)
	assertFloat(t, "UnrealizedPL", m.UnrealizedPL, 750.0)
	assertFloat(t, "UnrealizedPLPct", m.UnrealizedPLPct, 60.0)
	assertFloat(t, "DividendIncome", m.DividendIncome, 4.7)
	assertFloat(t, "TotalReturn", m.TotalReturn, 754.7)
	assertFloat(t, "TotalReturnPct", m.TotalReturnPct, 754.7/1250*100)
	assertFloat(t, "YieldOnCost", m.YieldOnCost, 0.47/125*100)
	assertFloat(t, "DividendIncomeRecent", m.DividendIncomeRecent, 0)

	years := 517 / 365.25
	wantCAGR := (math.Pow(2004.7/1250, 1/years) - 1) * 100
	assertFloat(t, "CAGR", m.CAGR, wantCAGR)

	if !m.PurchaseDate.Equal(day("2023-01-03")) {
		t.Errorf("Expected aligned purchase date 2023-01-03, got %s", m.PurchaseDate)
	}
	if m.Beta != 0 {
		t.Errorf("Expected beta 0 without benchmark data, got %v", m.Beta)
	}
}

func TestCalculator_Calculate_Alignment(t *testing.T) {
	t.Run("weekend purchase uses nearest trading day", func(t *testing.T) {
		calc := fixedCalculator(day("2024-03-01"))
		prices := series("MSFT",
			pp("2024-01-05", 100),
			pp("2024-01-08", 110),
			pp("2024-03-01", 120),
		)
		dividends := model.DividendSeries{Points: []model.DividendPoint{
			{Date: day("2024-01-05"), Amount: 5}, // before the aligned Monday
			{Date: day("2024-02-15"), Amount: 1},
		}}
		// Sunday, one day before Monday 2024-01-08
		h := model.Holding{Symbol: "MSFT", Quantity: 2, PurchaseDate: day("2024-01-07")}

		m := calc.Calculate(h, prices, dividends, model.PriceSeries{}).Metrics

		if !m.PurchaseDate.Equal(day("2024-01-08")) {
			t.Errorf("Expected aligned date 2024-01-08, got %s", m.PurchaseDate.Format("2006-01-02"))
		}
		assertFloat(t, "PurchasePrice", m.PurchasePrice, 110)
		assertFloat(t, "DividendIncome", m.DividendIncome, 2)
	})
}

// TestCalculator_Calculate_Degraded tests holdings without price history.
//
// WHY: A single bad symbol must not fail the batch; it degrades to zeroed metrics.
func TestCalculator_Calculate_Degraded(t *testing.T) {
	calc := fixedCalculator(day("2024-06-03"))
	h := model.Holding{Symbol: "GONE", Quantity: 5, PurchaseDate: day("2024-01-02")}

	result := calc.Calculate(h, model.PriceSeries{Symbol: "GONE"}, model.DividendSeries{}, model.PriceSeries{})

	if !result.Degraded {
		t.Fatal("Expected degraded result")
	}
	if !errors.Is(result.Reason, apperrors.ErrNoPriceData) {
		t.Errorf("Expected ErrNoPriceData reason, got %v", result.Reason)
	}

	m := result.Metrics
	if !m.PurchaseDate.Equal(h.PurchaseDate) {
		t.Errorf("Expected unaligned purchase date to be kept, got %s", m.PurchaseDate)
	}
	for name, v := range map[string]float64{
		"PurchasePrice":   m.PurchasePrice,
		"CostBasis":       m.CostBasis,
		"UnrealizedPLPct": m.UnrealizedPLPct,
		"TotalReturnPct":  m.TotalReturnPct,
		"YieldOnCost":     m.YieldOnCost,
		"CAGR":            m.CAGR,
		"Beta":            m.Beta,
	} {
		if v != 0 {
			t.Errorf("Expected %s = 0, got %v", name, v)
		}
	}
}

func TestCalculator_Calculate_RecentDividends(t *testing.T) {
	t.Run("trailing window ignores purchase date", func(t *testing.T) {
		now := day("2024-06-30")
		calc := fixedCalculator(now)
		prices := series("KO",
			pp("2024-06-01", 60),
			pp("2024-06-28", 62),
			pp("2024-06-29", 63),
		)
		dividends := model.DividendSeries{Points: []model.DividendPoint{
			{Date: day("2024-05-01"), Amount: 0.5}, // outside the window
			{Date: day("2024-06-14"), Amount: 0.485},
		}}
		h := model.Holding{Symbol: "KO", Quantity: 100, PurchaseDate: day("2024-06-29")}

		m := calc.Calculate(h, prices, dividends, model.PriceSeries{}).Metrics

		assertFloat(t, "DividendIncome", m.DividendIncome, 0)
		assertFloat(t, "DividendIncomeRecent", m.DividendIncomeRecent, 48.5)
	})
}

// TestCalculator_Calculate_Beta tests the covariance/variance beta.
//
// WHY: Beta must only use returns since purchase and only on days both series traded.
func TestCalculator_Calculate_Beta(t *testing.T) {
	now := day("2024-01-20")
	calc := fixedCalculator(now)

	benchCloses := []float64{100, 101, 99, 102, 100, 103}
	dates := []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-15"}

	bench := model.PriceSeries{Symbol: "SPY"}
	asset := model.PriceSeries{Symbol: "TQQQ"}
	// A pre-purchase crash that must not influence beta.
	asset.Points = append(asset.Points, pp("2024-01-05", 500))
	assetClose := 50.0
	for i, c := range benchCloses {
		bench.Points = append(bench.Points, pp(dates[i], c))
		if i > 0 {
			r := c/benchCloses[i-1] - 1
			assetClose *= 1 + 2*r
		}
		asset.Points = append(asset.Points, pp(dates[i], assetClose))
	}

	h := model.Holding{Symbol: "TQQQ", Quantity: 1, PurchaseDate: day("2024-01-08")}
	m := calc.Calculate(h, asset, model.DividendSeries{}, bench).Metrics

	if math.Abs(m.Beta-2) > 1e-9 {
		t.Errorf("Expected beta 2, got %v", m.Beta)
	}

	t.Run("flat benchmark yields zero", func(t *testing.T) {
		flat := series("SPY", pp("2024-01-08", 100), pp("2024-01-09", 100), pp("2024-01-10", 100))
		m := calc.Calculate(h, asset, model.DividendSeries{}, flat).Metrics
		if m.Beta != 0 {
			t.Errorf("Expected beta 0 for zero variance, got %v", m.Beta)
		}
	})

	t.Run("no common dates yields zero", func(t *testing.T) {
		other := series("SPY", pp("2023-01-02", 100), pp("2023-01-03", 101), pp("2023-01-04", 102))
		m := calc.Calculate(h, asset, model.DividendSeries{}, other).Metrics
		if m.Beta != 0 {
			t.Errorf("Expected beta 0 for empty intersection, got %v", m.Beta)
		}
	})
}

func TestCalculator_CalculateAll(t *testing.T) {
	calc := fixedCalculator(day("2024-06-03"))
	portfolio := model.Portfolio{
		{Symbol: "AAA", Quantity: 1, PurchaseDate: day("2024-01-02")},
		{Symbol: "MISSING", Quantity: 3, PurchaseDate: day("2024-01-02")},
		{Symbol: "BBB", Quantity: 2, PurchaseDate: day("2024-01-02")},
	}
	prices := map[string]model.PriceSeries{
		"AAA": series("AAA", pp("2024-01-02", 10), pp("2024-06-03", 12)),
		"BBB": series("BBB", pp("2024-01-02", 20), pp("2024-06-03", 18)),
	}

	results := calc.CalculateAll(portfolio, prices, nil)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"AAA", "MISSING", "BBB"} {
		if results[i].Metrics.Symbol != want {
			t.Errorf("Result %d: expected %s, got %s", i, want, results[i].Metrics.Symbol)
		}
	}
	if results[0].Degraded || results[2].Degraded {
		t.Error("Expected priced holdings to be healthy")
	}
	if !results[1].Degraded {
		t.Error("Expected holding without prices to be degraded")
	}

	metrics := analytics.MetricsOf(results)
	assertFloat(t, "BBB MarketValue", metrics[2].MarketValue, 36)
}
