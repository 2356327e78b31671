package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
)

type fakePostStore struct {
	posts []monitor.Post
}

func (f *fakePostStore) Append(ctx context.Context, post monitor.Post) error {
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostStore) PostsSince(ctx context.Context, since time.Time) ([]monitor.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) RecentPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) ProcessedPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) UpdateSentiment(ctx context.Context, id string, label monitor.SentimentLabel, score float64) error {
	return nil
}

func (f *fakePostStore) Stats(ctx context.Context) (monitor.DashboardStats, error) {
	return monitor.DashboardStats{}, nil
}

func (f *fakePostStore) TimeSeries(ctx context.Context, hours int) ([]monitor.TimeSeriesPoint, error) {
	return nil, nil
}

type fakeRuleStore struct {
	rules      []monitor.AlertRule
	increments map[string]int
	calls      int
}

func (f *fakeRuleStore) ActiveRules(ctx context.Context) ([]monitor.AlertRule, error) {
	return f.rules, nil
}

func (f *fakeRuleStore) IncrementTrigger(ctx context.Context, id string, by int) error {
	if f.increments == nil {
		f.increments = make(map[string]int)
	}
	f.increments[id] += by
	f.calls++
	return nil
}

type fakeNotifier struct {
	events    []monitor.AlertEvent
	delivered bool
}

func (f *fakeNotifier) Notify(ctx context.Context, event monitor.AlertEvent) bool {
	f.events = append(f.events, event)
	return f.delivered
}

func newTestEvaluator(posts *fakePostStore, rules *fakeRuleStore, notifier *fakeNotifier) *Evaluator {
	return NewEvaluator(
		config.AlertingConfig{Window: 5 * time.Minute},
		posts, rules, notifier, logging.New(), nil,
	)
}

func TestEvaluateMatchesTag(t *testing.T) {
	posts := &fakePostStore{posts: []monitor.Post{
		{ID: "p1", Content: "routine maintenance announcement", Tags: []string{"leak", "infra"}},
	}}
	rules := &fakeRuleStore{rules: []monitor.AlertRule{
		{ID: "r1", Keyword: "leak", Active: true, Severity: monitor.SeverityHigh},
	}}
	notifier := &fakeNotifier{delivered: true}

	events, err := newTestEvaluator(posts, rules, notifier).Evaluate(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "tag", events[0].MatchedOn)
	assert.Equal(t, 1, rules.increments["r1"])
}

func TestEvaluateCountsEveryMatchingPost(t *testing.T) {
	posts := &fakePostStore{posts: []monitor.Post{
		{ID: "p1", Content: "data leak reported at vendor"},
		{ID: "p2", Content: "another LEAK confirmed"},
		{ID: "p3", Content: "unrelated story"},
	}}
	rules := &fakeRuleStore{rules: []monitor.AlertRule{
		{ID: "r1", Keyword: "leak", Active: true},
	}}
	notifier := &fakeNotifier{delivered: true}

	events, err := newTestEvaluator(posts, rules, notifier).Evaluate(context.Background())
	require.NoError(t, err)

	// One event per matching post, one batched counter write.
	assert.Len(t, events, 2)
	assert.Equal(t, 2, rules.increments["r1"])
	assert.Equal(t, 1, rules.calls)
}

func TestEvaluateSkipsEmptyKeyword(t *testing.T) {
	posts := &fakePostStore{posts: []monitor.Post{
		{ID: "p1", Content: "anything at all"},
	}}
	rules := &fakeRuleStore{rules: []monitor.AlertRule{
		{ID: "r1", Keyword: "   ", Active: true},
		{ID: "r2", Keyword: "anything", Active: true},
	}}
	notifier := &fakeNotifier{delivered: true}

	events, err := newTestEvaluator(posts, rules, notifier).Evaluate(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "r2", events[0].Rule.ID)
	assert.Zero(t, rules.increments["r1"])
}

func TestEvaluateCountersSurviveDeliveryFailure(t *testing.T) {
	posts := &fakePostStore{posts: []monitor.Post{
		{ID: "p1", Content: "breach detected in payment system"},
	}}
	rules := &fakeRuleStore{rules: []monitor.AlertRule{
		{ID: "r1", Keyword: "breach", Active: true},
	}}
	notifier := &fakeNotifier{delivered: false}

	events, err := newTestEvaluator(posts, rules, notifier).Evaluate(context.Background())
	require.NoError(t, err)

	// Delivery failed but the counter increment stands.
	require.Len(t, events, 1)
	assert.Equal(t, 1, rules.increments["r1"])
	assert.Len(t, notifier.events, 1)
}

func TestEvaluateNoActiveRules(t *testing.T) {
	posts := &fakePostStore{posts: []monitor.Post{{ID: "p1", Content: "x"}}}
	rules := &fakeRuleStore{}
	notifier := &fakeNotifier{delivered: true}

	events, err := newTestEvaluator(posts, rules, notifier).Evaluate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, notifier.events)
}
