package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
)

// FixedClock returns a time source that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewTestTrackerService creates a TrackerService over db with historical tracking
// enabled, SPY as benchmark and the given holdings and market data.
func NewTestTrackerService(
	t *testing.T,
	db *sql.DB,
	portfolio model.Portfolio,
	market service.MarketDataProvider,
) *service.TrackerService {
	t.Helper()

	return service.NewTrackerService(
		&StaticHoldings{Portfolio: portfolio},
		market,
		repository.NewTableRepository(db),
		config.DefaultAnalyticsConfig(),
	)
}

// NewTestHistoryService creates a HistoryService over db.
func NewTestHistoryService(t *testing.T, db *sql.DB) *service.HistoryService {
	t.Helper()

	return service.NewHistoryService(repository.NewTableRepository(db))
}

// NewTestSystemService creates a SystemService over db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}
