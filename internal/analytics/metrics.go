package analytics

import (
	"math"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// RecentDividendWindow is the trailing window used for DividendIncomeRecent.
const RecentDividendWindow = 28 * 24 * time.Hour

// daysPerYear converts holding periods to years for CAGR.
const daysPerYear = 365.25

// Calculator computes per-holding metrics against a benchmark.
// It holds no state between calls; Now is consulted once per Calculate call.
type Calculator struct {
	Benchmark string           // Benchmark symbol used for beta, e.g. "SPY"
	Now       func() time.Time // Defaults to time.Now when nil
}

// NewCalculator creates a Calculator for the given benchmark symbol.
func NewCalculator(benchmark string) *Calculator {
	return &Calculator{
		Benchmark: benchmark,
		Now:       time.Now,
	}
}

func (c *Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// CalculateAll computes metrics for every holding in input order. Holdings are processed
// sequentially; a holding whose price data is missing is degraded, never dropped, so
// the result always has one entry per holding.
//
// Parameters:
//   - portfolio: Holdings to compute
//   - prices: Adjusted close history by symbol; must contain the benchmark for beta
//   - dividends: Dividend history by symbol; missing symbols are treated as paying none
//
// Returns one HoldingResult per holding.
func (c *Calculator) CalculateAll(
	portfolio model.Portfolio,
	prices map[string]model.PriceSeries,
	dividends map[string]model.DividendSeries,
) []model.HoldingResult {
	benchmark := prices[c.Benchmark]
	benchReturns := benchmark.DailyReturns()

	results := make([]model.HoldingResult, len(portfolio))
	for i, h := range portfolio {
		results[i] = c.calculate(h, prices[h.Symbol], dividends[h.Symbol], benchReturns)
	}
	return results
}

// Calculate computes the metrics of one holding.
//
// Calculation steps:
//  1. Align the purchase date to the nearest trading day; that day's close is the purchase price
//  2. The last tick of the price series is the current price
//  3. Dividends on or after the aligned date count as income; the trailing four weeks as recent income
//  4. Yield on cost, CAGR (including dividends) and beta versus the benchmark
//
// When the price series is empty the holding is degraded: purchase price and cost basis are 0,
// the requested purchase date is kept, and all percentages are 0.
func (c *Calculator) Calculate(
	h model.Holding,
	prices model.PriceSeries,
	dividends model.DividendSeries,
	benchmark model.PriceSeries,
) model.HoldingResult {
	return c.calculate(h, prices, dividends, benchmark.DailyReturns())
}

func (c *Calculator) calculate(
	h model.Holding,
	prices model.PriceSeries,
	dividends model.DividendSeries,
	benchReturns []model.ReturnPoint,
) model.HoldingResult {
	now := c.now()
	result := model.HoldingResult{}

	purchaseDate := h.PurchaseDate
	var purchasePrice float64
	aligned, _, err := AlignDate(prices, h.PurchaseDate)
	if err != nil {
		result.Degraded = true
		result.Reason = err
	} else {
		purchaseDate = aligned.Date
		purchasePrice = aligned.Close
	}

	var currentPrice float64
	if latest, ok := prices.Latest(); ok {
		currentPrice = latest.Close
	}

	costBasis := h.Quantity * purchasePrice
	marketValue := h.Quantity * currentPrice
	unrealizedPL := marketValue - costBasis

	divsPerShare := dividends.SumSince(purchaseDate)
	dividendIncome := divsPerShare * h.Quantity
	// Not bounded by the purchase date.
	dividendRecent := dividends.SumSince(now.Add(-RecentDividendWindow)) * h.Quantity

	totalReturn := unrealizedPL + dividendIncome

	var yieldOnCost float64
	if purchasePrice > 0 {
		yieldOnCost = divsPerShare / purchasePrice * 100
	}

	var cagr float64
	years := float64(daysBetween(purchaseDate, now)) / daysPerYear
	if years > 0 && costBasis > 0 {
		growth := math.Pow((marketValue+dividendIncome)/costBasis, 1/years) - 1
		if !math.IsNaN(growth) && !math.IsInf(growth, 0) {
			cagr = growth * 100
		}
	}

	var b float64
	if !result.Degraded {
		b = beta(prices.DailyReturns(), benchReturns, purchaseDate)
	}

	result.Metrics = model.HoldingMetrics{
		Symbol:               h.Symbol,
		Quantity:             h.Quantity,
		PurchaseDate:         purchaseDate,
		PurchasePrice:        purchasePrice,
		CurrentPrice:         currentPrice,
		CostBasis:            costBasis,
		MarketValue:          marketValue,
		UnrealizedPL:         unrealizedPL,
		UnrealizedPLPct:      percentOf(unrealizedPL, costBasis),
		DividendIncome:       dividendIncome,
		DividendIncomeRecent: dividendRecent,
		TotalReturn:          totalReturn,
		TotalReturnPct:       percentOf(totalReturn, costBasis),
		YieldOnCost:          yieldOnCost,
		CAGR:                 cagr,
		Beta:                 b,
	}
	return result
}

// MetricsOf extracts the metrics records from results, preserving order.
func MetricsOf(results []model.HoldingResult) []model.HoldingMetrics {
	metrics := make([]model.HoldingMetrics, len(results))
	for i, r := range results {
		metrics[i] = r.Metrics
	}
	return metrics
}
