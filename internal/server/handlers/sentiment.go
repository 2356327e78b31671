// internal/server/handlers/sentiment.go

package handlers

import (
	"encoding/json"
	"net/http"

	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/domain/sentiment"
	"mediawatch/internal/logging"
)

// SentimentHandler handles sentiment classification HTTP requests
type SentimentHandler struct {
	classifier       sentiment.Classifier
	posts            monitor.PostStore
	retrainBatchSize int
	logger           logging.Logger
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(
	classifier sentiment.Classifier,
	posts monitor.PostStore,
	retrainBatchSize int,
	logger logging.Logger,
) *SentimentHandler {
	return &SentimentHandler{
		classifier:       classifier,
		posts:            posts,
		retrainBatchSize: retrainBatchSize,
		logger:           logger,
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label     monitor.SentimentLabel `json:"label"`
	Score     float64                `json:"score"`
	Confident bool                   `json:"confident"`
}

// Classify scores a single text
func (h *SentimentHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Missing text", nil)
		return
	}

	result := h.classifier.Classify(r.Context(), req.Text)

	respondWithJSON(w, http.StatusOK, classifyResponse{
		Label:     result.Label,
		Score:     result.Score,
		Confident: result.Confident,
	})
}

// Retrain refits the sentiment model from stored processed posts
func (h *SentimentHandler) Retrain(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ProcessedPosts(r.Context(), h.retrainBatchSize)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load training posts", err)
		return
	}

	if err := h.classifier.Retrain(r.Context(), posts); err != nil {
		h.logger.WithError(err).Warn("Sentiment retrain rejected")
		respondWithError(w, http.StatusConflict, err.Error(), err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"retrained": true,
		"posts":     len(posts),
	})
}
