// internal/server/handlers/alerts.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
	"mediawatch/internal/service/alerting"
)

// AlertHandler handles alert evaluation HTTP requests
type AlertHandler struct {
	evaluator *alerting.Evaluator
	rules     monitor.RuleStore
	logger    logging.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(evaluator *alerting.Evaluator, rules monitor.RuleStore, logger logging.Logger) *AlertHandler {
	return &AlertHandler{
		evaluator: evaluator,
		rules:     rules,
		logger:    logger,
	}
}

// Evaluate runs one alert evaluation pass and returns the emitted events
func (h *AlertHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	events, err := h.evaluator.Evaluate(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Alert evaluation failed", err)
		return
	}

	if events == nil {
		events = []monitor.AlertEvent{}
	}
	respondWithJSON(w, http.StatusOK, events)
}

// ListRules returns the active alert rules
func (h *AlertHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rules.ActiveRules(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load rules", err)
		return
	}

	if rules == nil {
		rules = []monitor.AlertRule{}
	}
	respondWithJSON(w, http.StatusOK, rules)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}

// Common errors
var (
	ErrNotFound = errors.New("not found")
)
