package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker/internal/testutil"
)

var handlerNow = time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)

func testPortfolio() model.Portfolio {
	return model.Portfolio{
		{Symbol: "AAPL", Quantity: 10, PurchaseDate: testutil.Day(2023, 1, 3)},
	}
}

func testMarket() *testutil.MockMarketData {
	return testutil.NewMockMarketData(
		testutil.DailySeries("AAPL", testutil.Day(2023, 1, 3), 125, 126, 200),
		testutil.DailySeries("SPY", testutil.Day(2023, 1, 3), 380, 383, 530),
	)
}

func setupPortfolioHandler(t *testing.T, market *testutil.MockMarketData) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTrackerService(t, db, testPortfolio(), market).
		WithClock(testutil.FixedClock(handlerNow))
	return NewPortfolioHandler(svc), db
}

func TestPortfolioHandler_Run(t *testing.T) {
	t.Run("returns run summary and persists snapshot", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, testMarket())

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/run", nil)
		w := httptest.NewRecorder()

		handler.Run(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.RunSummary
		if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if !summary.SnapshotSaved {
			t.Error("Expected snapshot_saved to be true")
		}
		if summary.Snapshot.Summary.PositionCount != 1 {
			t.Errorf("Expected 1 position, got %d", summary.Snapshot.Summary.PositionCount)
		}
		testutil.AssertRowCount(t, db, repository.TableSnapshots, 1)
	})

	t.Run("returns 502 when prices cannot be fetched", func(t *testing.T) {
		market := testMarket().WithError(fmt.Errorf("%w: upstream down", apperrors.ErrFailedToFetchPrices))
		handler, db := setupPortfolioHandler(t, market)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/run", nil)
		w := httptest.NewRecorder()

		handler.Run(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, repository.TableSnapshots, 0)
	})
}

func TestPortfolioHandler_LatestSnapshot(t *testing.T) {
	t.Run("returns 404 when no snapshot exists", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t, testMarket())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/snapshots/latest", nil)
		w := httptest.NewRecorder()

		handler.LatestSnapshot(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns the most recent snapshot", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, testMarket())
		store := repository.NewTableRepository(db)
		testutil.NewSnapshot(handlerNow.AddDate(0, 0, -2)).WithPosition("AAPL", 10, 150).Persist(t, store)
		testutil.NewSnapshot(handlerNow.AddDate(0, 0, -1)).WithPosition("AAPL", 10, 160).Persist(t, store)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/snapshots/latest", nil)
		w := httptest.NewRecorder()

		handler.LatestSnapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snapshot model.Snapshot
		if err := json.NewDecoder(w.Body).Decode(&snapshot); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if snapshot.Summary.TotalValue != 1600 {
			t.Errorf("Expected total_value 1600, got %v", snapshot.Summary.TotalValue)
		}
	})
}

func TestPortfolioHandler_Snapshots(t *testing.T) {
	handler, db := setupPortfolioHandler(t, testMarket())
	store := repository.NewTableRepository(db)
	testutil.NewSnapshot(handlerNow.AddDate(0, 0, -2)).WithPosition("AAPL", 10, 150).Persist(t, store)
	testutil.NewSnapshot(handlerNow.AddDate(0, 0, -1)).WithPosition("AAPL", 10, 160).Persist(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/snapshots", nil)
	w := httptest.NewRecorder()

	handler.Snapshots(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snapshots []model.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snapshots); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].Summary.TotalValue != 1500 {
		t.Errorf("Expected snapshots in insertion order, first total_value %v", snapshots[0].Summary.TotalValue)
	}
}

func TestPortfolioHandler_Changes(t *testing.T) {
	t.Run("returns empty list before any change", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t, testMarket())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/changes", nil)
		w := httptest.NewRecorder()

		handler.Changes(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})

	t.Run("returns 500 when the database is closed", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, testMarket())
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/changes", nil)
		w := httptest.NewRecorder()

		handler.Changes(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestPortfolioHandler_Trend verifies days parsing and the lookback filter.
//
// WHY: the days parameter is user input; anything outside 1..3650 must be rejected
// before the history is read, and an omitted value falls back to the configured window.
func TestPortfolioHandler_Trend(t *testing.T) {
	persistHistory := func(t *testing.T, db *sql.DB) {
		t.Helper()
		store := repository.NewTableRepository(db)
		for _, age := range []int{120, 10, 3} {
			testutil.NewSnapshot(handlerNow.AddDate(0, 0, -age)).WithPosition("AAPL", 10, 150).Persist(t, store)
		}
	}

	tests := []struct {
		name       string
		days       string
		wantStatus int
		wantDays   int
		wantPoints int
	}{
		{name: "default window", days: "", wantStatus: http.StatusOK, wantDays: 90, wantPoints: 2},
		{name: "narrow window", days: "7", wantStatus: http.StatusOK, wantDays: 7, wantPoints: 1},
		{name: "wide window", days: "365", wantStatus: http.StatusOK, wantDays: 365, wantPoints: 3},
		{name: "non-numeric", days: "abc", wantStatus: http.StatusBadRequest},
		{name: "zero", days: "0", wantStatus: http.StatusBadRequest},
		{name: "too large", days: "5000", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, db := setupPortfolioHandler(t, testMarket())
			persistHistory(t, db)

			params := map[string]string{}
			if tt.days != "" {
				params["days"] = tt.days
			}
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/trend", params)
			w := httptest.NewRecorder()

			handler.Trend(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp TrendResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Days != tt.wantDays {
				t.Errorf("Expected days %d, got %d", tt.wantDays, resp.Days)
			}
			if len(resp.Points) != tt.wantPoints {
				t.Errorf("Expected %d points, got %d", tt.wantPoints, len(resp.Points))
			}
		})
	}

	t.Run("returns 404 on empty history", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t, testMarket())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/trend", nil)
		w := httptest.NewRecorder()

		handler.Trend(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
