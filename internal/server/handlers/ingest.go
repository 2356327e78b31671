// internal/server/handlers/ingest.go

package handlers

import (
	"net/http"

	"mediawatch/internal/logging"
	"mediawatch/internal/service/ingest"
)

// IngestHandler triggers on-demand crawl cycles
type IngestHandler struct {
	engine *ingest.Engine
	logger logging.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(engine *ingest.Engine, logger logging.Logger) *IngestHandler {
	return &IngestHandler{
		engine: engine,
		logger: logger,
	}
}

// Run executes one crawl cycle immediately
func (h *IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	stored, err := h.engine.RunCycle(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Crawl cycle failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"posts": stored})
}
