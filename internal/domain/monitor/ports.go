// internal/domain/monitor/ports.go

package monitor

import (
	"context"
	"time"
)

// PostStore defines storage for collected posts. The analytics core only
// appends posts, sets sentiment fields once, and reads time windows; it
// never deletes.
type PostStore interface {
	// Append stores a new post
	Append(ctx context.Context, post Post) error

	// PostsSince returns all posts created at or after the given time
	PostsSince(ctx context.Context, since time.Time) ([]Post, error)

	// RecentPosts returns the most recently collected posts
	RecentPosts(ctx context.Context, limit int) ([]Post, error)

	// ProcessedPosts returns up to limit posts that already carry a
	// sentiment label, for retraining
	ProcessedPosts(ctx context.Context, limit int) ([]Post, error)

	// UpdateSentiment sets the sentiment fields of a stored post
	UpdateSentiment(ctx context.Context, id string, label SentimentLabel, score float64) error

	// Stats returns aggregate counts for the dashboard
	Stats(ctx context.Context) (DashboardStats, error)

	// TimeSeries returns hourly post volume for the trailing window
	TimeSeries(ctx context.Context, hours int) ([]TimeSeriesPoint, error)
}

// RuleStore defines storage for alert rules. Rules are created and edited
// by an external admin surface; this core only reads them and increments
// trigger counters.
type RuleStore interface {
	// ActiveRules returns all rules with the active flag set
	ActiveRules(ctx context.Context) ([]AlertRule, error)

	// IncrementTrigger adds by to a rule's trigger counter
	IncrementTrigger(ctx context.Context, id string, by int) error
}

// Notifier delivers alert events to their configured channels. Delivery is
// best effort: the return value reports whether any channel accepted the
// event, and the caller never retries.
type Notifier interface {
	Notify(ctx context.Context, event AlertEvent) bool
}
