// Package metrics exposes Prometheus metrics for the tracker: HTTP request
// metrics, tracker run outcomes and the latest portfolio totals.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the status label of tracker_runs_total.
const (
	RunStatusSuccess = "success"
	RunStatusFailure = "failure"
)

var (
	registry = prometheus.NewRegistry()

	// HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Tracker metrics
	trackerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_runs_total",
			Help: "Total number of tracker runs by outcome",
		},
		[]string{"status"},
	)

	trackerRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_run_duration_seconds",
			Help:    "Tracker run duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	degradedHoldingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_degraded_holdings_total",
			Help: "Total number of holdings computed with degraded metrics",
		},
	)

	priceFetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_price_fetch_failures_total",
			Help: "Total number of per-symbol price history fetch failures",
		},
		[]string{"symbol"},
	)

	// Portfolio metrics
	portfolioValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_total_value",
			Help: "Market value of the portfolio at the last snapshot",
		},
	)

	portfolioCost = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_total_cost",
			Help: "Cost basis of the portfolio at the last snapshot",
		},
	)

	portfolioPositions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_position_count",
			Help: "Number of positions at the last snapshot",
		},
	)
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(httpRequestsTotal)
	registry.MustRegister(httpRequestDuration)

	registry.MustRegister(trackerRunsTotal)
	registry.MustRegister(trackerRunDuration)
	registry.MustRegister(degradedHoldingsTotal)
	registry.MustRegister(priceFetchFailuresTotal)

	registry.MustRegister(portfolioValue)
	registry.MustRegister(portfolioCost)
	registry.MustRegister(portfolioPositions)
}

// Registry returns the prometheus registry
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns an http.Handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Middleware records request count and latency per chi route pattern.
// Requests to /metrics itself are not recorded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RecordRun records the outcome and duration of a tracker run
func RecordRun(status string, duration time.Duration) {
	trackerRunsTotal.WithLabelValues(status).Inc()
	trackerRunDuration.Observe(duration.Seconds())
}

// RecordDegradedHoldings adds n degraded holdings
func RecordDegradedHoldings(n int) {
	degradedHoldingsTotal.Add(float64(n))
}

// RecordPriceFetchFailure records a failed price history fetch for symbol
func RecordPriceFetchFailure(symbol string) {
	priceFetchFailuresTotal.WithLabelValues(symbol).Inc()
}

// SetPortfolioTotals publishes the totals of the latest snapshot
func SetPortfolioTotals(value, cost float64, positions int) {
	portfolioValue.Set(value)
	portfolioCost.Set(cost)
	portfolioPositions.Set(float64(positions))
}
