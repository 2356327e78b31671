// internal/domain/forecast/model.go

package forecast

import (
	"context"
	"time"

	"mediawatch/internal/domain/monitor"
)

// Trend directions
const (
	TrendRising  = "RISING"
	TrendFalling = "FALLING"
	TrendStable  = "STABLE"
)

// Sentiment outlooks
const (
	OutlookImproving     = "IMPROVING"
	OutlookDeteriorating = "DETERIORATING"
	OutlookNeutral       = "NEUTRAL"
)

// PredictedTrend is the projected volume trajectory for one category
type PredictedTrend struct {
	Category        string
	CurrentVolume   int
	PredictedVolume int
	Trend           string
	ChangePercent   float64
	Confidence      float64
}

// SentimentForecast captures the direction sentiment is moving across the
// observed window
type SentimentForecast struct {
	Outlook                    string
	PositiveShift              float64
	NegativeShift              float64
	PredictedDominantSentiment monitor.SentimentLabel
}

// EmergingTopic is a keyword gaining frequency in recent posts. GrowthRate
// is reserved for a historical baseline comparison and is currently
// always 0.
type EmergingTopic struct {
	Keyword    string
	Frequency  int
	GrowthRate float64
}

// TrendPrediction is a full forecast snapshot. It is built fresh on every
// invocation and never mutated afterwards.
type TrendPrediction struct {
	GeneratedAt       time.Time
	ForecastHours     int
	PredictedTrends   []PredictedTrend
	SentimentForecast SentimentForecast
	EmergingTopics    []EmergingTopic
	Confidence        int
	Recommendations   []string
	Message           string
}

// Predictor produces trend forecasts over the historical post window
type Predictor interface {
	// PredictTrends forecasts category volume, sentiment momentum and
	// emerging keywords for the next hoursAhead hours
	PredictTrends(ctx context.Context, hoursAhead int) (TrendPrediction, error)
}
