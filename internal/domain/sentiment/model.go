// internal/domain/sentiment/model.go

package sentiment

import (
	"context"

	"mediawatch/internal/domain/monitor"
)

// Result is the outcome of classifying a single text. Score is always in
// [-1, 1]; Confident reports whether the classifier's margin exceeded its
// trust threshold.
type Result struct {
	Label     monitor.SentimentLabel
	Score     float64
	Confident bool
}

// Classifier assigns a sentiment to a text. Classify never fails: when the
// trained model is unavailable the implementation falls back to lexical
// scoring.
type Classifier interface {
	// Classify scores a single text
	Classify(ctx context.Context, text string) Result

	// Retrain refits the model from already-labeled posts and swaps it in
	// atomically. The previous model stays active when retraining fails.
	Retrain(ctx context.Context, posts []monitor.Post) error
}
