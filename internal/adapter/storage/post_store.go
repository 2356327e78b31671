// internal/adapter/storage/post_store.go

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"mediawatch/internal/domain/monitor"
)

// PostStore implements monitor.PostStore on PostgreSQL
type PostStore struct {
	db *pgxpool.Pool
}

// NewPostStore creates a new post store
func NewPostStore(db *pgxpool.Pool) *PostStore {
	return &PostStore{
		db: db,
	}
}

// Append stores a new post
func (s *PostStore) Append(ctx context.Context, p monitor.Post) error {
	query := `
		INSERT INTO posts (
			id, source, content, url, author, location, language,
			posted_at, created_at, category, sentiment, sentiment_score,
			tags, processed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14
		)
	`

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		ctx,
		query,
		p.ID,
		p.Source,
		p.Content,
		p.URL,
		p.Author,
		p.Location,
		p.Language,
		p.PostedAt,
		p.CreatedAt,
		p.Category,
		string(p.Sentiment),
		p.SentimentScore,
		p.Tags,
		p.Processed,
	)
	if err != nil {
		return fmt.Errorf("error inserting post: %w", err)
	}

	return nil
}

// PostsSince returns all posts created at or after the given time
func (s *PostStore) PostsSince(ctx context.Context, since time.Time) ([]monitor.Post, error) {
	query := `
		SELECT id, source, content, url, author, location, language,
		       posted_at, created_at, category, sentiment, sentiment_score,
		       tags, processed
		FROM posts
		WHERE created_at >= $1
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// RecentPosts returns the most recently collected posts
func (s *PostStore) RecentPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	query := `
		SELECT id, source, content, url, author, location, language,
		       posted_at, created_at, category, sentiment, sentiment_score,
		       tags, processed
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ProcessedPosts returns up to limit posts that already carry a sentiment
// label
func (s *PostStore) ProcessedPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	query := `
		SELECT id, source, content, url, author, location, language,
		       posted_at, created_at, category, sentiment, sentiment_score,
		       tags, processed
		FROM posts
		WHERE processed = true
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying processed posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// UpdateSentiment sets the sentiment fields of a stored post
func (s *PostStore) UpdateSentiment(ctx context.Context, id string, label monitor.SentimentLabel, score float64) error {
	query := `
		UPDATE posts
		SET sentiment = $2, sentiment_score = $3, processed = true
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, string(label), score)
	if err != nil {
		return fmt.Errorf("error updating sentiment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found", id)
	}

	return nil
}

// Stats returns aggregate counts for the dashboard
func (s *PostStore) Stats(ctx context.Context) (monitor.DashboardStats, error) {
	var stats monitor.DashboardStats

	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE sentiment = 'Positive'),
		       count(*) FILTER (WHERE sentiment = 'Negative'),
		       count(*) FILTER (WHERE sentiment = 'Neutral')
		FROM posts
	`
	if err := s.db.QueryRow(ctx, query).Scan(
		&stats.TotalPosts, &stats.Positive, &stats.Negative, &stats.Neutral,
	); err != nil {
		return stats, fmt.Errorf("error querying post totals: %w", err)
	}

	categoryRows, err := s.db.Query(ctx, `
		SELECT category, count(*) AS n
		FROM posts
		GROUP BY category
		ORDER BY n DESC
		LIMIT 5
	`)
	if err != nil {
		return stats, fmt.Errorf("error querying category stats: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var c monitor.CategoryCount
		if err := categoryRows.Scan(&c.Category, &c.Count); err != nil {
			return stats, fmt.Errorf("error scanning category stats: %w", err)
		}
		stats.TopCategories = append(stats.TopCategories, c)
	}

	sourceRows, err := s.db.Query(ctx, `
		SELECT source, count(*) AS n
		FROM posts
		GROUP BY source
		ORDER BY n DESC
		LIMIT 5
	`)
	if err != nil {
		return stats, fmt.Errorf("error querying source stats: %w", err)
	}
	defer sourceRows.Close()

	for sourceRows.Next() {
		var c monitor.SourceCount
		if err := sourceRows.Scan(&c.Source, &c.Count); err != nil {
			return stats, fmt.Errorf("error scanning source stats: %w", err)
		}
		stats.TopSources = append(stats.TopSources, c)
	}

	return stats, nil
}

// TimeSeries returns hourly post volume for the trailing window
func (s *PostStore) TimeSeries(ctx context.Context, hours int) ([]monitor.TimeSeriesPoint, error) {
	query := `
		SELECT date_trunc('hour', created_at) AS bucket,
		       count(*),
		       count(*) FILTER (WHERE sentiment = 'Positive'),
		       count(*) FILTER (WHERE sentiment = 'Negative')
		FROM posts
		WHERE created_at >= $1
		GROUP BY bucket
		ORDER BY bucket
	`

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	rows, err := s.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error querying time series: %w", err)
	}
	defer rows.Close()

	var points []monitor.TimeSeriesPoint
	for rows.Next() {
		var p monitor.TimeSeriesPoint
		if err := rows.Scan(&p.Time, &p.Count, &p.Positive, &p.Negative); err != nil {
			return nil, fmt.Errorf("error scanning time series: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

func scanPosts(rows pgx.Rows) ([]monitor.Post, error) {
	var posts []monitor.Post
	for rows.Next() {
		var p monitor.Post
		var sentiment string
		if err := rows.Scan(
			&p.ID,
			&p.Source,
			&p.Content,
			&p.URL,
			&p.Author,
			&p.Location,
			&p.Language,
			&p.PostedAt,
			&p.CreatedAt,
			&p.Category,
			&sentiment,
			&p.SentimentScore,
			&p.Tags,
			&p.Processed,
		); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		p.Sentiment = monitor.SentimentLabel(sentiment)
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
