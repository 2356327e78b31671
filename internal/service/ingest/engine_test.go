package ingest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	domain "mediawatch/internal/domain/sentiment"
	"mediawatch/internal/logging"
)

type fakeSource struct {
	name  string
	posts []monitor.Post
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.posts, f.err
}

type fakeClassifier struct{}

func (fakeClassifier) Classify(ctx context.Context, text string) domain.Result {
	return domain.Result{Label: monitor.SentimentPositive, Score: 0.6, Confident: true}
}

func (fakeClassifier) Retrain(ctx context.Context, posts []monitor.Post) error {
	return nil
}

type fakeStore struct {
	appended  []monitor.Post
	appendErr error
}

func (f *fakeStore) Append(ctx context.Context, post monitor.Post) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, post)
	return nil
}

func (f *fakeStore) PostsSince(ctx context.Context, since time.Time) ([]monitor.Post, error) {
	return f.appended, nil
}

func (f *fakeStore) RecentPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.appended, nil
}

func (f *fakeStore) ProcessedPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.appended, nil
}

func (f *fakeStore) UpdateSentiment(ctx context.Context, id string, label monitor.SentimentLabel, score float64) error {
	return nil
}

func (f *fakeStore) Stats(ctx context.Context) (monitor.DashboardStats, error) {
	return monitor.DashboardStats{}, nil
}

func (f *fakeStore) TimeSeries(ctx context.Context, hours int) ([]monitor.TimeSeriesPoint, error) {
	return nil, nil
}

type fakeEvaluator struct {
	passes int
}

func (f *fakeEvaluator) Evaluate(ctx context.Context) ([]monitor.AlertEvent, error) {
	f.passes++
	return nil, nil
}

func newTestEngine(sources []Source, store *fakeStore, evaluator *fakeEvaluator) *Engine {
	return NewEngine(
		config.IngestConfig{Interval: time.Minute, MaxPostsPerCycle: 10},
		sources, store, fakeClassifier{}, evaluator, logging.New(), nil,
	)
}

func TestRunCycleClassifiesAndStores(t *testing.T) {
	source := &fakeSource{name: "test", posts: []monitor.Post{
		{ID: "p1", Content: "the new smartphone is selling fast"},
		{ID: "p2", Content: ""},
	}}
	store := &fakeStore{}
	evaluator := &fakeEvaluator{}

	stored, err := newTestEngine([]Source{source}, store, evaluator).RunCycle(context.Background())
	require.NoError(t, err)

	// The empty post is skipped; the other is categorized, classified
	// and stored.
	assert.Equal(t, 1, stored)
	require.Len(t, store.appended, 1)

	post := store.appended[0]
	assert.Equal(t, CategoryTechnology, post.Category)
	assert.Equal(t, monitor.SentimentPositive, post.Sentiment)
	assert.True(t, post.Processed)
	assert.False(t, post.CreatedAt.IsZero())

	// One alert evaluation pass per cycle.
	assert.Equal(t, 1, evaluator.passes)
}

func TestRunCycleIsolatesFailingSource(t *testing.T) {
	failing := &fakeSource{name: "down", err: fmt.Errorf("rate limited")}
	working := &fakeSource{name: "up", posts: []monitor.Post{
		{ID: "p1", Content: "flood warnings issued for the coast"},
	}}
	store := &fakeStore{}
	evaluator := &fakeEvaluator{}

	stored, err := newTestEngine([]Source{failing, working}, store, evaluator).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stored)
	assert.Equal(t, CategoryDisaster, store.appended[0].Category)
}

func TestStartStop(t *testing.T) {
	store := &fakeStore{}
	evaluator := &fakeEvaluator{}
	engine := newTestEngine(nil, store, evaluator)

	ctx := context.Background()
	require.NoError(t, engine.Start(ctx))
	// Second start is a no-op.
	require.NoError(t, engine.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, engine.Stop(stopCtx))
	require.NoError(t, engine.Stop(stopCtx))
}
