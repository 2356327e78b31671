// internal/server/handlers/dashboard.go

package handlers

import (
	"net/http"
	"strconv"

	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
)

// DashboardHandler serves aggregate statistics for the overview page
type DashboardHandler struct {
	posts  monitor.PostStore
	logger logging.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(posts monitor.PostStore, logger logging.Logger) *DashboardHandler {
	return &DashboardHandler{
		posts:  posts,
		logger: logger,
	}
}

// Stats returns corpus totals, sentiment split and top categories/sources
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// TimeSeries returns hourly post volume for the trailing window
func (h *DashboardHandler) TimeSeries(w http.ResponseWriter, r *http.Request) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))
	if hours <= 0 {
		hours = 24
	}

	points, err := h.posts.TimeSeries(r.Context(), hours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load time series", err)
		return
	}

	if points == nil {
		points = []monitor.TimeSeriesPoint{}
	}
	respondWithJSON(w, http.StatusOK, points)
}
