package handlers

import (
	"net/http"
	"strconv"

	"github.com/ndewijer/Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Portfolio-Tracker/internal/validation"
)

// PortfolioHandler handles tracker runs and snapshot history requests
type PortfolioHandler struct {
	trackerService *service.TrackerService
	historyService *service.HistoryService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(trackerService *service.TrackerService) *PortfolioHandler {
	return &PortfolioHandler{
		trackerService: trackerService,
		historyService: trackerService.History(),
	}
}

// TrendResponse is the body of the trend endpoint.
type TrendResponse struct {
	Days   int                `json:"days"`
	Points []model.TrendPoint `json:"points"`
}

// Run triggers a tracker run and returns its summary.
//
// Endpoint: POST /api/portfolio/run
// Response: 200 OK with model.RunSummary
// Error: 422 when holdings are missing or invalid, 502 when no prices could be fetched,
// 500 for other failures
func (h *PortfolioHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.trackerService.Run(r.Context())
	if err != nil {
		respondServiceError(w, "tracker run failed", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Snapshots returns every persisted snapshot in insertion order.
//
// Endpoint: GET /api/portfolio/snapshots
func (h *PortfolioHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.historyService.Snapshots(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveHistory.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, snapshots)
}

// LatestSnapshot returns the most recent snapshot.
//
// Endpoint: GET /api/portfolio/snapshots/latest
// Error: 404 Not Found when no snapshot has been persisted
func (h *PortfolioHandler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.historyService.LatestSnapshot(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveHistory.Error(), err)
		return
	}
	if snapshot == nil {
		response.RespondError(w, http.StatusNotFound, "no snapshots found", "")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// Changes returns every persisted daily change in insertion order.
//
// Endpoint: GET /api/portfolio/changes
func (h *PortfolioHandler) Changes(w http.ResponseWriter, r *http.Request) {
	changes, err := h.historyService.Changes(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveChanges.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, changes)
}

// Trend returns total value and cost over a lookback window.
//
// Endpoint: GET /api/portfolio/trend?days=90
// Query Parameters:
//   - days: Lookback window in days (optional, defaults to the configured window)
//
// Error: 400 for an invalid days value, 404 when no snapshot has been persisted
func (h *PortfolioHandler) Trend(w http.ResponseWriter, r *http.Request) {
	days := h.trackerService.Config().LookbackWindowDays

	if param := r.URL.Query().Get("days"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid days parameter", err.Error())
			return
		}
		days = parsed
	}
	if err := validation.ValidateTrendDays(days); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid days parameter", err.Error())
		return
	}

	points, err := h.historyService.Trend(r.Context(), days)
	if err != nil {
		logging.Debug().Err(err).Int("days", days).Msg("trend unavailable")
		respondServiceError(w, "failed to build trend", err)
		return
	}

	respondJSON(w, http.StatusOK, TrendResponse{Days: days, Points: points})
}
