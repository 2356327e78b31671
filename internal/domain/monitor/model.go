// internal/domain/monitor/model.go

package monitor

import (
	"time"
)

// SentimentLabel classifies the tone of a post
type SentimentLabel string

// Sentiment labels
const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// Severity indicates how urgent a triggered alert rule is
type Severity string

// Alert severities
const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Post represents a single piece of monitored media content collected
// from a source (social platform, news site, blog)
type Post struct {
	ID             string
	Source         string
	Content        string
	URL            string
	Author         string
	Location       string
	Language       string
	PostedAt       time.Time
	CreatedAt      time.Time
	Category       string
	Sentiment      SentimentLabel
	SentimentScore float64
	Tags           []string
	Processed      bool
}

// AlertRule defines a keyword that should raise an alert when it appears
// in incoming posts. TriggerCount only ever grows; the evaluator is the
// sole writer.
type AlertRule struct {
	ID           string
	Keyword      string
	Severity     Severity
	Active       bool
	NotifyEmail  string
	CreatedAt    time.Time
	TriggerCount int
}

// AlertEvent is emitted for every (rule, post) keyword match
type AlertEvent struct {
	ID         string
	Rule       AlertRule
	Post       Post
	MatchedOn  string // "content" or "tag"
	OccurredAt time.Time
}

// DashboardStats summarizes the collected corpus for the overview page
type DashboardStats struct {
	TotalPosts    int
	Positive      int
	Negative      int
	Neutral       int
	TopCategories []CategoryCount
	TopSources    []SourceCount
}

// CategoryCount is a category with its post volume
type CategoryCount struct {
	Category string
	Count    int
}

// SourceCount is a source with its post volume
type SourceCount struct {
	Source string
	Count  int
}

// TimeSeriesPoint is one hourly bucket of post volume with its
// positive/negative split
type TimeSeriesPoint struct {
	Time     time.Time
	Count    int
	Positive int
	Negative int
}
