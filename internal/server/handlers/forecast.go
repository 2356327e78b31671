// internal/server/handlers/forecast.go

package handlers

import (
	"net/http"
	"strconv"

	"mediawatch/internal/domain/forecast"
	"mediawatch/internal/logging"
)

// ForecastHandler handles trend forecast HTTP requests
type ForecastHandler struct {
	predictor forecast.Predictor
	logger    logging.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(predictor forecast.Predictor, logger logging.Logger) *ForecastHandler {
	return &ForecastHandler{
		predictor: predictor,
		logger:    logger,
	}
}

// Forecast returns a trend prediction for the requested horizon
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))
	if hours <= 0 {
		hours = 24
	}

	prediction, err := h.predictor.PredictTrends(r.Context(), hours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate forecast", err)
		return
	}

	respondWithJSON(w, http.StatusOK, prediction)
}
